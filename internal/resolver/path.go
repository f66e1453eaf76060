package resolver

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dmateos/tagsync/internal/api"
	"github.com/dmateos/tagsync/internal/logging"
	"github.com/dmateos/tagsync/internal/types"
)

// PathResolver maps a local relative path to its remote counterparts by
// mirroring the directory structure as a chain of folder lookups under a
// root folder.
//
// Every path component except the last names a folder and is matched
// exactly; when several folders share a name the first match wins. The
// final component is matched against image files by name substring, so
// "cat" finds both "cat.jpg" and "cat-edit.jpg". Both policies mirror the
// remote store's tolerant-matching behavior and are deliberate.
type PathResolver struct {
	store    api.Store
	logger   logging.Logger
	cacheTTL time.Duration
	cache    *folderCache
}

// folderCache memoizes resolved folder-chain prefixes so overlapping paths
// skip repeat folder queries. Keyed on rootID plus the slash-joined folder
// prefix; behavior is identical with the cache disabled, only cheaper.
type folderCache struct {
	mu      sync.RWMutex
	entries map[string]folderCacheEntry
}

type folderCacheEntry struct {
	folderID  string
	timestamp time.Time
}

// NewPathResolver creates a path resolver. A cacheTTL of zero disables
// prefix caching.
func NewPathResolver(store api.Store, cacheTTL time.Duration, logger logging.Logger) *PathResolver {
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}
	return &PathResolver{
		store:    store,
		logger:   logger,
		cacheTTL: cacheTTL,
		cache: &folderCache{
			entries: make(map[string]folderCacheEntry),
		},
	}
}

// Resolve walks relPath's folder segments from rootID and returns the
// remote images matching the final segment. A missing folder anywhere in
// the chain short-circuits: no further queries are made and an empty
// result is returned. An empty result is not an error; errors are
// reserved for failed queries against the remote store.
func (r *PathResolver) Resolve(ctx context.Context, reqCtx *types.RequestContext, rootID, relPath string) ([]*types.RemoteFile, error) {
	relPath = normalizePath(relPath)
	if relPath == "" {
		return nil, nil
	}

	segments := strings.Split(relPath, "/")
	folderSegments := segments[:len(segments)-1]
	fileSegment := segments[len(segments)-1]

	currentID := rootID
	for i, segment := range folderSegments {
		if segment == "" {
			continue
		}

		key := r.cacheKey(rootID, folderSegments[:i+1])
		if id, ok := r.checkCache(key); ok {
			currentID = id
			continue
		}

		folders, err := r.store.FindFolders(ctx, reqCtx, currentID, segment)
		if err != nil {
			return nil, err
		}
		if len(folders) == 0 {
			r.logger.Debug("Folder not found in remote structure",
				logging.F("segment", segment),
				logging.F("path", relPath),
			)
			return nil, nil
		}

		// First match wins on ambiguous folder names
		currentID = folders[0].ID
		r.updateCache(key, currentID)
	}

	return r.store.FindImages(ctx, reqCtx, currentID, fileSegment)
}

// InvalidateCache drops all cached folder prefixes
func (r *PathResolver) InvalidateCache() {
	r.cache.mu.Lock()
	defer r.cache.mu.Unlock()
	r.cache.entries = make(map[string]folderCacheEntry)
}

func (r *PathResolver) cacheKey(rootID string, prefix []string) string {
	return rootID + ":" + strings.Join(prefix, "/")
}

func (r *PathResolver) checkCache(key string) (string, bool) {
	if r.cacheTTL <= 0 {
		return "", false
	}

	r.cache.mu.RLock()
	defer r.cache.mu.RUnlock()

	entry, ok := r.cache.entries[key]
	if !ok {
		return "", false
	}
	if time.Since(entry.timestamp) > r.cacheTTL {
		return "", false
	}
	return entry.folderID, true
}

func (r *PathResolver) updateCache(key, folderID string) {
	if r.cacheTTL <= 0 {
		return
	}

	r.cache.mu.Lock()
	defer r.cache.mu.Unlock()
	r.cache.entries[key] = folderCacheEntry{
		folderID:  folderID,
		timestamp: time.Now(),
	}
}

func normalizePath(path string) string {
	path = strings.TrimPrefix(path, "/")
	path = strings.TrimSuffix(path, "/")
	return path
}
