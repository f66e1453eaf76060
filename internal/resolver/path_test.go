package resolver

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmateos/tagsync/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore serves folder and image lookups from in-memory maps and counts
// every query it receives.
type fakeStore struct {
	folders map[string][]*types.RemoteFile // parentID|name
	images  map[string][]*types.RemoteFile // parentID|namePart

	folderQueries int
	imageQueries  int
	folderErr     error
	imageErr      error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		folders: make(map[string][]*types.RemoteFile),
		images:  make(map[string][]*types.RemoteFile),
	}
}

func (s *fakeStore) addFolder(parentID, name, id string) {
	key := parentID + "|" + name
	s.folders[key] = append(s.folders[key], &types.RemoteFile{ID: id, Name: name})
}

func (s *fakeStore) addImage(parentID, namePart, id, name string) {
	key := parentID + "|" + namePart
	s.images[key] = append(s.images[key], &types.RemoteFile{ID: id, Name: name, MimeType: "image/jpeg"})
}

func (s *fakeStore) FindFolders(ctx context.Context, reqCtx *types.RequestContext, parentID, name string) ([]*types.RemoteFile, error) {
	s.folderQueries++
	if s.folderErr != nil {
		return nil, s.folderErr
	}
	return s.folders[parentID+"|"+name], nil
}

func (s *fakeStore) FindImages(ctx context.Context, reqCtx *types.RequestContext, parentID, namePart string) ([]*types.RemoteFile, error) {
	s.imageQueries++
	if s.imageErr != nil {
		return nil, s.imageErr
	}
	return s.images[parentID+"|"+namePart], nil
}

func (s *fakeStore) UpdateDescription(ctx context.Context, reqCtx *types.RequestContext, fileID, description string) (*types.RemoteFile, error) {
	return nil, errors.New("not implemented")
}

func reqCtx() *types.RequestContext {
	return &types.RequestContext{Profile: "default", RequestType: types.RequestTypeListOrSearch, TraceID: "test-trace"}
}

func TestResolveNestedPath(t *testing.T) {
	store := newFakeStore()
	store.addFolder("root", "a", "id-a")
	store.addFolder("id-a", "b", "id-b")
	store.addImage("id-b", "cat.jpg", "id-cat", "cat.jpg")

	r := NewPathResolver(store, 0, nil)
	matches, err := r.Resolve(context.Background(), reqCtx(), "root", "a/b/cat.jpg")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "id-cat", matches[0].ID)

	// One query per folder segment plus one terminal image query
	assert.Equal(t, 2, store.folderQueries)
	assert.Equal(t, 1, store.imageQueries)
}

func TestResolveSingleSegment(t *testing.T) {
	store := newFakeStore()
	store.addImage("root", "cat.jpg", "id-cat", "cat.jpg")

	r := NewPathResolver(store, 0, nil)
	matches, err := r.Resolve(context.Background(), reqCtx(), "root", "cat.jpg")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, 0, store.folderQueries)
	assert.Equal(t, 1, store.imageQueries)
}

func TestResolveMissingFolderShortCircuits(t *testing.T) {
	store := newFakeStore()
	// "a" exists but "b" does not; "c" and the image must never be queried
	store.addFolder("root", "a", "id-a")

	r := NewPathResolver(store, 0, nil)
	matches, err := r.Resolve(context.Background(), reqCtx(), "root", "a/b/c/cat.jpg")
	require.NoError(t, err)
	assert.Empty(t, matches)

	assert.Equal(t, 2, store.folderQueries, "resolution must stop at the first missing segment")
	assert.Equal(t, 0, store.imageQueries)
}

func TestResolveFirstMatchWins(t *testing.T) {
	store := newFakeStore()
	store.addFolder("root", "a", "id-a1")
	store.addFolder("root", "a", "id-a2")
	store.addImage("id-a1", "cat.jpg", "id-cat", "cat.jpg")

	r := NewPathResolver(store, 0, nil)
	matches, err := r.Resolve(context.Background(), reqCtx(), "root", "a/cat.jpg")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "id-cat", matches[0].ID)
}

func TestResolveSubstringTerminalMatch(t *testing.T) {
	store := newFakeStore()
	store.addImage("root", "cat", "id-cat", "cat.jpg")
	store.addImage("root", "cat", "id-cat-edit", "cat-edit.jpg")

	r := NewPathResolver(store, 0, nil)
	matches, err := r.Resolve(context.Background(), reqCtx(), "root", "cat")
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestResolveQueryErrorPropagates(t *testing.T) {
	store := newFakeStore()
	store.folderErr = errors.New("quota exceeded")

	r := NewPathResolver(store, 0, nil)
	_, err := r.Resolve(context.Background(), reqCtx(), "root", "a/cat.jpg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestResolveEmptyPath(t *testing.T) {
	store := newFakeStore()

	r := NewPathResolver(store, 0, nil)
	matches, err := r.Resolve(context.Background(), reqCtx(), "root", "")
	require.NoError(t, err)
	assert.Nil(t, matches)
	assert.Equal(t, 0, store.folderQueries)
	assert.Equal(t, 0, store.imageQueries)
}

func TestResolveCacheSkipsRepeatFolderQueries(t *testing.T) {
	store := newFakeStore()
	store.addFolder("root", "a", "id-a")
	store.addFolder("id-a", "b", "id-b")
	store.addImage("id-b", "cat.jpg", "id-cat", "cat.jpg")
	store.addImage("id-b", "dog.jpg", "id-dog", "dog.jpg")

	r := NewPathResolver(store, 5*time.Minute, nil)

	_, err := r.Resolve(context.Background(), reqCtx(), "root", "a/b/cat.jpg")
	require.NoError(t, err)
	_, err = r.Resolve(context.Background(), reqCtx(), "root", "a/b/dog.jpg")
	require.NoError(t, err)

	assert.Equal(t, 2, store.folderQueries, "second resolve must reuse the cached prefix")
	assert.Equal(t, 2, store.imageQueries)
}

func TestResolveCacheDisabled(t *testing.T) {
	store := newFakeStore()
	store.addFolder("root", "a", "id-a")
	store.addImage("id-a", "cat.jpg", "id-cat", "cat.jpg")

	r := NewPathResolver(store, 0, nil)

	for i := 0; i < 2; i++ {
		_, err := r.Resolve(context.Background(), reqCtx(), "root", "a/cat.jpg")
		require.NoError(t, err)
	}
	assert.Equal(t, 2, store.folderQueries)
}

func TestInvalidateCache(t *testing.T) {
	store := newFakeStore()
	store.addFolder("root", "a", "id-a")
	store.addImage("id-a", "cat.jpg", "id-cat", "cat.jpg")

	r := NewPathResolver(store, 5*time.Minute, nil)

	_, err := r.Resolve(context.Background(), reqCtx(), "root", "a/cat.jpg")
	require.NoError(t, err)
	r.InvalidateCache()
	_, err = r.Resolve(context.Background(), reqCtx(), "root", "a/cat.jpg")
	require.NoError(t, err)

	assert.Equal(t, 2, store.folderQueries)
}
