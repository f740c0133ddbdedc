package domain

import (
	"path"
	"strings"
)

// TransferredSuffix marks a file as already uploaded. It is inserted
// between the base name and the extension, so "contract.pdf" becomes
// "contract_UPLOADED.pdf". The suffix is the sole idempotence mechanism:
// a marked file is never considered again.
const TransferredSuffix = "_UPLOADED"

// MIMETypePDF is the content type accepted by the default upload filter.
const MIMETypePDF = "application/pdf"

// CandidateFile is a document found beneath an authoritative folder.
type CandidateFile struct {
	// FileID is the document store's ID for the file.
	FileID string

	// Name is the file's current name, extension included.
	Name string

	// FolderID is the immediate parent folder.
	FolderID string

	// FolderPath is the rendered path of the client folder the file
	// was found under, for reports.
	FolderPath string

	// MIMEType is the store-reported content type.
	MIMEType string

	// Size is the file size in bytes, when the store reports one.
	Size int64
}

// IsTransferred reports whether the name already carries the
// transferred suffix before its extension.
func IsTransferred(name string) bool {
	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)
	return strings.HasSuffix(base, TransferredSuffix)
}

// TransferredName returns the name with the suffix inserted before the
// extension. A name that already carries the suffix is returned unchanged.
func TransferredName(name string) string {
	if IsTransferred(name) {
		return name
	}
	ext := path.Ext(name)
	return strings.TrimSuffix(name, ext) + TransferredSuffix + ext
}

// RestoredName strips exactly one transferred suffix from the name.
// Names without the suffix are returned unchanged.
func RestoredName(name string) string {
	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)
	if !strings.HasSuffix(base, TransferredSuffix) {
		return name
	}
	return strings.TrimSuffix(base, TransferredSuffix) + ext
}

// RenamedFile records a successful transferred-marker removal.
type RenamedFile struct {
	FileID  string
	OldName string
	NewName string
}

// RenameFailure records a transferred-marker removal that failed.
type RenameFailure struct {
	FileID string
	Name   string
	Reason string
}

// Eligible reports whether the file should be uploaded: a recognised
// extension and no transferred suffix. Content-type filtering happens
// at enumeration time, so a wrongly-named file the store reports as a
// different type never reaches this check.
func (c CandidateFile) Eligible(extensions []string) bool {
	if IsTransferred(c.Name) {
		return false
	}
	ext := strings.ToLower(path.Ext(c.Name))
	for _, allowed := range extensions {
		if ext == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}
