// Package auth provides TokenProvider implementations.
//
// Two providers are included:
//   - APIKeyProvider: static API key for the DealTrack registry, sourced
//     from configuration with an environment variable override.
//   - GoogleTokenProvider: OAuth access tokens for Google APIs, refreshed
//     from a cached token file. Token acquisition is out of scope; the
//     token file must already exist.
package auth
