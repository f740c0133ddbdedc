// Package file provides file-based configuration storage using TOML.
//
// Configuration lives in ~/.dealsync/config.toml (or a caller-supplied
// directory) with nested tables flattened into dot-notation keys, e.g.
// [discovery] marker_filename = "dealsync.txt" reads as
// "discovery.marker_filename". Writes persist immediately.
//
// The store also implements driven.ConfigWatcher via fsnotify, so the
// daemon notices external edits to the config file between runs.
package file
