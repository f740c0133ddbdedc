package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/openhouse-labs/dealsync-cli/internal/core/domain"
	"github.com/openhouse-labs/dealsync-cli/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

type folderEntry struct {
	id     string
	name   string
	parent string
}

type fileEntry struct {
	id      string
	name    string
	parent  string
	mime    string
	content []byte
}

// DocumentStore is an in-memory folder/file tree implementing
// driven.DocumentStore. Tests build a tree with AddFolder and AddFile
// and point services at it. Listings come back in insertion order.
type DocumentStore struct {
	mu          sync.RWMutex
	folders     map[string]*folderEntry
	files       map[string]*fileEntry
	folderOrder []string
	fileOrder   []string
	nextID      int
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		folders: make(map[string]*folderEntry),
		files:   make(map[string]*fileEntry),
	}
}

// AddFolder creates a folder under parentID and returns its ID.
// An empty parentID creates a top-level folder.
func (s *DocumentStore) AddFolder(parentID, name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := fmt.Sprintf("folder-%d", s.nextID)
	s.folders[id] = &folderEntry{id: id, name: name, parent: parentID}
	s.folderOrder = append(s.folderOrder, id)
	return id
}

// AddFile creates a file under parentID and returns its ID.
func (s *DocumentStore) AddFile(parentID, name, mimeType string, content []byte) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := fmt.Sprintf("file-%d", s.nextID)
	s.files[id] = &fileEntry{id: id, name: name, parent: parentID, mime: mimeType, content: content}
	s.fileOrder = append(s.fileOrder, id)
	return id
}

// FileName returns a file's current name, for rename assertions.
func (s *DocumentStore) FileName(fileID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if f, ok := s.files[fileID]; ok {
		return f.name
	}
	return ""
}

// FindMarkers searches the whole store for files with the given exact name.
func (s *DocumentStore) FindMarkers(_ context.Context, name string) ([]driven.MarkerHit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var hits []driven.MarkerHit
	for _, id := range s.fileOrder {
		f := s.files[id]
		if f.name == name {
			hits = append(hits, driven.MarkerHit{FileID: f.id, ParentID: f.parent})
		}
	}
	return hits, nil
}

// Folder fetches metadata for one folder.
func (s *DocumentStore) Folder(_ context.Context, folderID string) (*driven.FolderRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.folders[folderID]
	if !ok {
		return nil, fmt.Errorf("%w: folder %s", domain.ErrNotFound, folderID)
	}
	return &driven.FolderRef{FolderID: f.id, Name: f.name, ParentID: f.parent}, nil
}

// ListFolders returns the immediate subfolders of a folder.
func (s *DocumentStore) ListFolders(_ context.Context, parentID string) ([]driven.FolderRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var refs []driven.FolderRef
	for _, id := range s.folderOrder {
		f := s.folders[id]
		if f.parent == parentID {
			refs = append(refs, driven.FolderRef{FolderID: f.id, Name: f.name, ParentID: f.parent})
		}
	}
	return refs, nil
}

// ListFiles returns the immediate files of a folder, optionally
// restricted to one content type.
func (s *DocumentStore) ListFiles(_ context.Context, parentID, mimeType string) ([]driven.StoredFile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []driven.StoredFile
	for _, id := range s.fileOrder {
		f := s.files[id]
		if f.parent != parentID {
			continue
		}
		if mimeType != "" && f.mime != mimeType {
			continue
		}
		out = append(out, driven.StoredFile{FileID: f.id, Name: f.name, MIMEType: f.mime, Size: int64(len(f.content))})
	}
	return out, nil
}

// ReadText fetches a file's content as text.
func (s *DocumentStore) ReadText(_ context.Context, fileID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.files[fileID]
	if !ok {
		return "", fmt.Errorf("%w: file %s", domain.ErrNotFound, fileID)
	}
	return string(f.content), nil
}

// Download fetches a file's raw bytes.
func (s *DocumentStore) Download(_ context.Context, fileID string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.files[fileID]
	if !ok {
		return nil, fmt.Errorf("%w: file %s", domain.ErrNotFound, fileID)
	}
	out := make([]byte, len(f.content))
	copy(out, f.content)
	return out, nil
}

// Rename changes a file's name in place.
func (s *DocumentStore) Rename(_ context.Context, fileID, newName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.files[fileID]
	if !ok {
		return fmt.Errorf("%w: file %s", domain.ErrNotFound, fileID)
	}
	f.name = newName
	return nil
}
