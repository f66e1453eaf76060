package api

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/dmateos/tagsync/internal/types"
	"github.com/dmateos/tagsync/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// updateFakeStore answers UpdateDescription from a map of per-file results
// and is safe for concurrent use.
type updateFakeStore struct {
	mu       sync.Mutex
	failIDs  map[string]bool
	received map[string]string // fileID -> description
}

func newUpdateFakeStore() *updateFakeStore {
	return &updateFakeStore{
		failIDs:  make(map[string]bool),
		received: make(map[string]string),
	}
}

func (s *updateFakeStore) FindFolders(ctx context.Context, reqCtx *types.RequestContext, parentID, name string) ([]*types.RemoteFile, error) {
	return nil, errors.New("not implemented")
}

func (s *updateFakeStore) FindImages(ctx context.Context, reqCtx *types.RequestContext, parentID, namePart string) ([]*types.RemoteFile, error) {
	return nil, errors.New("not implemented")
}

func (s *updateFakeStore) UpdateDescription(ctx context.Context, reqCtx *types.RequestContext, fileID, description string) (*types.RemoteFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failIDs[fileID] {
		return nil, errors.New("update rejected")
	}
	s.received[fileID] = description
	return &types.RemoteFile{ID: fileID, Name: "name-" + fileID, Description: description}, nil
}

func testReqCtx() *types.RequestContext {
	return &types.RequestContext{Profile: "default", RequestType: types.RequestTypeUpdate, TraceID: "test-trace"}
}

func TestBatchOneOutcomePerItem(t *testing.T) {
	store := newUpdateFakeStore()
	b := NewBatchUpdater(store, 3, nil)

	for i := 0; i < 7; i++ {
		require.NoError(t, b.Add(types.BatchItem{
			Token:  fmt.Sprintf("tok-%d", i),
			FileID: fmt.Sprintf("file-%d", i),
		}))
	}
	require.Equal(t, 7, b.Len())

	outcomes, err := b.Execute(context.Background(), testReqCtx())
	require.NoError(t, err)
	require.Len(t, outcomes, 7)

	tokens := make(map[string]bool)
	for _, o := range outcomes {
		assert.True(t, o.Updated())
		tokens[o.Token] = true
	}
	assert.Len(t, tokens, 7, "every submitted token must appear exactly once")
}

func TestBatchFailureIsolation(t *testing.T) {
	store := newUpdateFakeStore()
	store.failIDs["file-1"] = true
	b := NewBatchUpdater(store, 2, nil)

	for i := 0; i < 3; i++ {
		require.NoError(t, b.Add(types.BatchItem{
			Token:     fmt.Sprintf("tok-%d", i),
			FileID:    fmt.Sprintf("file-%d", i),
			LocalPath: fmt.Sprintf("img-%d.jpg", i),
		}))
	}

	outcomes, err := b.Execute(context.Background(), testReqCtx())
	require.NoError(t, err)
	require.Len(t, outcomes, 3)

	failed := 0
	for _, o := range outcomes {
		if !o.Updated() {
			failed++
			assert.Equal(t, "tok-1", o.Token)
			assert.Equal(t, "img-1.jpg", o.LocalPath)
		}
	}
	assert.Equal(t, 1, failed)
	assert.Len(t, store.received, 2, "the failing item must not block the others")
}

func TestBatchEmptyExecute(t *testing.T) {
	b := NewBatchUpdater(newUpdateFakeStore(), 2, nil)

	outcomes, err := b.Execute(context.Background(), testReqCtx())
	require.NoError(t, err)
	assert.Nil(t, outcomes)
}

func TestBatchDoubleExecute(t *testing.T) {
	b := NewBatchUpdater(newUpdateFakeStore(), 2, nil)
	require.NoError(t, b.Add(types.BatchItem{Token: "tok", FileID: "file"}))

	_, err := b.Execute(context.Background(), testReqCtx())
	require.NoError(t, err)

	_, err = b.Execute(context.Background(), testReqCtx())
	require.Error(t, err)

	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, utils.ErrCodeInternalError, appErr.CLIError.Code)
}

func TestBatchAddAfterExecute(t *testing.T) {
	b := NewBatchUpdater(newUpdateFakeStore(), 2, nil)
	require.NoError(t, b.Add(types.BatchItem{Token: "tok", FileID: "file"}))

	_, err := b.Execute(context.Background(), testReqCtx())
	require.NoError(t, err)

	err = b.Add(types.BatchItem{Token: "tok-2", FileID: "file-2"})
	require.Error(t, err)
}

func TestBatchCancelledContext(t *testing.T) {
	b := NewBatchUpdater(newUpdateFakeStore(), 2, nil)
	require.NoError(t, b.Add(types.BatchItem{Token: "tok", FileID: "file"}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.Execute(ctx, testReqCtx())
	require.Error(t, err)

	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, utils.ErrCodeCancelled, appErr.CLIError.Code)
}
