package api

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmateos/tagsync/internal/types"
	"github.com/dmateos/tagsync/internal/utils"
	"google.golang.org/api/drive/v3"
)

// Store is the narrow remote-store surface the sync pipeline depends on:
// folder lookup, image lookup, and description updates. Everything else the
// Drive client offers stays behind this boundary.
type Store interface {
	// FindFolders lists non-trashed child folders of parentID whose name
	// equals name exactly.
	FindFolders(ctx context.Context, reqCtx *types.RequestContext, parentID, name string) ([]*types.RemoteFile, error)

	// FindImages lists non-trashed child images of parentID whose name
	// contains namePart as a substring.
	FindImages(ctx context.Context, reqCtx *types.RequestContext, parentID, namePart string) ([]*types.RemoteFile, error)

	// UpdateDescription overwrites the description of the file with fileID.
	UpdateDescription(ctx context.Context, reqCtx *types.RequestContext, fileID, description string) (*types.RemoteFile, error)
}

// DriveStore adapts the Google Drive v3 client to the Store interface.
type DriveStore struct {
	client *Client
}

// NewDriveStore creates a Store backed by the Drive API
func NewDriveStore(client *Client) *DriveStore {
	return &DriveStore{client: client}
}

// FindFolders lists child folders of parentID with an exact name match
func (s *DriveStore) FindFolders(ctx context.Context, reqCtx *types.RequestContext, parentID, name string) ([]*types.RemoteFile, error) {
	query := fmt.Sprintf("'%s' in parents and name = '%s' and mimeType = '%s' and trashed = false",
		escapeQueryString(parentID), escapeQueryString(name), utils.MimeTypeFolder)
	return s.list(ctx, reqCtx, query)
}

// FindImages lists child images of parentID whose name contains namePart
func (s *DriveStore) FindImages(ctx context.Context, reqCtx *types.RequestContext, parentID, namePart string) ([]*types.RemoteFile, error) {
	query := fmt.Sprintf("'%s' in parents and name contains '%s' and mimeType contains '%s' and trashed = false",
		escapeQueryString(parentID), escapeQueryString(namePart), utils.MimeTypeImagePrefix)
	return s.list(ctx, reqCtx, query)
}

func (s *DriveStore) list(ctx context.Context, reqCtx *types.RequestContext, query string) ([]*types.RemoteFile, error) {
	call := s.client.Service().Files.List().
		Q(query).
		Fields("files(id,name,mimeType)")

	result, err := ExecuteWithRetry(ctx, s.client, reqCtx, func() (*drive.FileList, error) {
		return call.Context(ctx).Do()
	})
	if err != nil {
		return nil, err
	}

	files := make([]*types.RemoteFile, len(result.Files))
	for i, f := range result.Files {
		files[i] = &types.RemoteFile{
			ID:       f.Id,
			Name:     f.Name,
			MimeType: f.MimeType,
		}
	}
	return files, nil
}

// UpdateDescription overwrites the description field of a remote file
func (s *DriveStore) UpdateDescription(ctx context.Context, reqCtx *types.RequestContext, fileID, description string) (*types.RemoteFile, error) {
	metadata := &drive.File{Description: description}
	// ForceSendFields so an empty description still clears the field
	metadata.ForceSendFields = []string{"Description"}

	call := s.client.Service().Files.Update(fileID, metadata).
		Fields("id,name,description")

	result, err := ExecuteWithRetry(ctx, s.client, reqCtx, func() (*drive.File, error) {
		return call.Context(ctx).Do()
	})
	if err != nil {
		return nil, err
	}

	return &types.RemoteFile{
		ID:          result.Id,
		Name:        result.Name,
		Description: result.Description,
	}, nil
}

// escapeQueryString escapes backslashes and single quotes for Drive query
// string literals.
func escapeQueryString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "'", "\\'")
	return s
}
