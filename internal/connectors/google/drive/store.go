package drive

import (
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"

	"github.com/openhouse-labs/dealsync-cli/internal/connectors/google"
	"github.com/openhouse-labs/dealsync-cli/internal/core/domain"
	"github.com/openhouse-labs/dealsync-cli/internal/core/ports/driven"
)

// MimeTypeFolder is the Drive MIME type marking a folder.
const MimeTypeFolder = "application/vnd.google-apps.folder"

// listPageSize is the page size for files.list calls.
const listPageSize = 100

// maxDownloadSize caps a single file download (50MB). DealTrack rejects
// larger documents anyway.
const maxDownloadSize = 50 * 1024 * 1024

// Ensure Store implements the interface.
var _ driven.DocumentStore = (*Store)(nil)

// Store implements driven.DocumentStore on the Google Drive v3 API.
// All calls go through a shared rate limiter and classify Drive errors
// into the domain's sentinels so services never see googleapi types.
type Store struct {
	svc     *drive.Service
	limiter *google.RateLimiter
}

// NewStore creates a Drive-backed document store.
func NewStore(svc *drive.Service) *Store {
	return &Store{
		svc:     svc,
		limiter: google.NewRateLimiter(google.ServiceDrive),
	}
}

// FindMarkers searches the whole drive for non-trashed files with the
// given exact name, following pagination to the end.
func (s *Store) FindMarkers(ctx context.Context, name string) ([]driven.MarkerHit, error) {
	query := fmt.Sprintf("name = '%s' and trashed = false and mimeType != '%s'",
		escapeQuery(name), MimeTypeFolder)

	var hits []driven.MarkerHit
	pageToken := ""
	for {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		call := s.svc.Files.List().
			Context(ctx).
			Q(query).
			Fields("nextPageToken, files(id, parents)").
			PageSize(listPageSize).
			SupportsAllDrives(true).
			IncludeItemsFromAllDrives(true)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		list, err := call.Do()
		if err != nil {
			return nil, s.wrap("search markers", err)
		}
		for _, f := range list.Files {
			parent := ""
			if len(f.Parents) > 0 {
				parent = f.Parents[0]
			}
			hits = append(hits, driven.MarkerHit{FileID: f.Id, ParentID: parent})
		}
		if list.NextPageToken == "" {
			return hits, nil
		}
		pageToken = list.NextPageToken
	}
}

// Folder fetches metadata for one folder.
func (s *Store) Folder(ctx context.Context, folderID string) (*driven.FolderRef, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	f, err := s.svc.Files.Get(folderID).
		Context(ctx).
		Fields("id, name, parents").
		SupportsAllDrives(true).
		Do()
	if err != nil {
		return nil, s.wrap(fmt.Sprintf("get folder %s", folderID), err)
	}
	ref := &driven.FolderRef{FolderID: f.Id, Name: f.Name}
	if len(f.Parents) > 0 {
		ref.ParentID = f.Parents[0]
	}
	return ref, nil
}

// ListFolders returns the immediate subfolders of a folder.
func (s *Store) ListFolders(ctx context.Context, parentID string) ([]driven.FolderRef, error) {
	query := fmt.Sprintf("'%s' in parents and trashed = false and mimeType = '%s'",
		escapeQuery(parentID), MimeTypeFolder)

	var refs []driven.FolderRef
	err := s.listAll(ctx, query, "nextPageToken, files(id, name, parents)", func(f *drive.File) {
		ref := driven.FolderRef{FolderID: f.Id, Name: f.Name}
		if len(f.Parents) > 0 {
			ref.ParentID = f.Parents[0]
		}
		refs = append(refs, ref)
	})
	if err != nil {
		return nil, s.wrap(fmt.Sprintf("list folders in %s", parentID), err)
	}
	return refs, nil
}

// ListFiles returns the immediate non-folder children of a folder,
// optionally restricted to one content type.
func (s *Store) ListFiles(ctx context.Context, parentID, mimeType string) ([]driven.StoredFile, error) {
	query := fmt.Sprintf("'%s' in parents and trashed = false and mimeType != '%s'",
		escapeQuery(parentID), MimeTypeFolder)
	if mimeType != "" {
		query = fmt.Sprintf("'%s' in parents and trashed = false and mimeType = '%s'",
			escapeQuery(parentID), escapeQuery(mimeType))
	}

	var files []driven.StoredFile
	err := s.listAll(ctx, query, "nextPageToken, files(id, name, mimeType, size)", func(f *drive.File) {
		files = append(files, driven.StoredFile{
			FileID:   f.Id,
			Name:     f.Name,
			MIMEType: f.MimeType,
			Size:     f.Size,
		})
	})
	if err != nil {
		return nil, s.wrap(fmt.Sprintf("list files in %s", parentID), err)
	}
	return files, nil
}

// ReadText fetches a document's content as text. Marker documents are
// plain text files of a few bytes, so the download size cap is moot.
func (s *Store) ReadText(ctx context.Context, fileID string) (string, error) {
	data, err := s.Download(ctx, fileID)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Download fetches a file's raw bytes.
func (s *Store) Download(ctx context.Context, fileID string) ([]byte, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	resp, err := s.svc.Files.Get(fileID).
		Context(ctx).
		SupportsAllDrives(true).
		Download()
	if err != nil {
		return nil, s.wrap(fmt.Sprintf("download %s", fileID), err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadSize))
	if err != nil {
		return nil, fmt.Errorf("read content of %s: %w", fileID, err)
	}
	return data, nil
}

// Rename changes a file's name in place.
func (s *Store) Rename(ctx context.Context, fileID, newName string) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	_, err := s.svc.Files.Update(fileID, &drive.File{Name: newName}).
		Context(ctx).
		Fields("id, name").
		SupportsAllDrives(true).
		Do()
	if err != nil {
		return s.wrap(fmt.Sprintf("rename %s", fileID), err)
	}
	return nil
}

// listAll follows files.list pagination, applying each page.
func (s *Store) listAll(ctx context.Context, query, fields string, apply func(*drive.File)) error {
	pageToken := ""
	for {
		if err := s.limiter.Wait(ctx); err != nil {
			return err
		}
		call := s.svc.Files.List().
			Context(ctx).
			Q(query).
			Fields(googleapi.Field(fields)).
			PageSize(listPageSize).
			SupportsAllDrives(true).
			IncludeItemsFromAllDrives(true)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		list, err := call.Do()
		if err != nil {
			return err
		}
		for _, f := range list.Files {
			apply(f)
		}
		if list.NextPageToken == "" {
			return nil
		}
		pageToken = list.NextPageToken
	}
}

// wrap classifies a Drive error: 429 feeds the limiter backoff, 404
// maps to the domain sentinel, everything else keeps the google
// sentinel or the raw error.
func (s *Store) wrap(op string, err error) error {
	if google.IsRateLimited(err) {
		s.limiter.RecordRateLimitError(0)
	}
	wrapped := google.WrapError(err)
	if google.IsNotFound(wrapped) {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, wrapped)
}

// escapeQuery escapes single quotes for a Drive query literal.
func escapeQuery(s string) string {
	return strings.ReplaceAll(s, "'", `\'`)
}
