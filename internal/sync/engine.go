package sync

import (
	"context"

	"github.com/dmateos/tagsync/internal/api"
	"github.com/dmateos/tagsync/internal/logging"
	"github.com/dmateos/tagsync/internal/sync/scanner"
	"github.com/dmateos/tagsync/internal/types"
	"github.com/dmateos/tagsync/internal/utils"
	"github.com/google/uuid"
)

// TagExtractor reads keyword tags from a local file
type TagExtractor interface {
	ExtractTags(ctx context.Context, path string) ([]string, error)
}

// Resolver maps a local relative path to its remote counterparts
type Resolver interface {
	Resolve(ctx context.Context, reqCtx *types.RequestContext, rootID, relPath string) ([]*types.RemoteFile, error)
}

// Updater is the batch queue the engine fills and executes
type Updater interface {
	Add(item types.BatchItem) error
	Len() int
	Execute(ctx context.Context, reqCtx *types.RequestContext) ([]types.UpdateOutcome, error)
}

// Config carries the run parameters. There is no process-wide state; every
// Synchronizer gets its own copy at construction.
type Config struct {
	// RootFolderID is the remote folder mirroring LocalDir.
	RootFolderID string
	// LocalDir is the local root to enumerate.
	LocalDir string
	// Extensions filters enumeration; defaults to utils.ImageExtensions.
	Extensions []string
	// Profile names the auth profile, carried into request contexts.
	Profile string
	// DryRun resolves and reports but enqueues and executes nothing.
	DryRun bool
}

// Synchronizer propagates local image keywords to remote file
// descriptions: enumerate, extract, build, resolve, enqueue, then execute
// the accumulated queue as one batch. One-directional and one-shot; no
// conflict detection, no delta tracking.
type Synchronizer struct {
	cfg       Config
	extractor TagExtractor
	resolver  Resolver
	batch     Updater
	events    Events
	logger    logging.Logger
}

// NewSynchronizer creates a synchronizer for one run
func NewSynchronizer(cfg Config, extractor TagExtractor, resolver Resolver, batch Updater, events Events, logger logging.Logger) *Synchronizer {
	if events == nil {
		events = NoopEvents{}
	}
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}
	return &Synchronizer{
		cfg:       cfg,
		extractor: extractor,
		resolver:  resolver,
		batch:     batch,
		events:    events,
		logger:    logger,
	}
}

// Run executes one synchronization pass and returns one outcome per
// submitted batch item, in completion order.
//
// Soft conditions — a file without tags, a failed extraction, a local path
// with no remote counterpart — are reported through the event stream and
// never stop the run. Errors returned from Run are fatal: an unreadable
// local root, a failed remote query, or a failed batch submission aborts
// the pass with no partial outcome slice.
func (s *Synchronizer) Run(ctx context.Context) ([]types.UpdateOutcome, error) {
	images, err := scanner.ListImages(ctx, s.cfg.LocalDir, s.extensions())
	if err != nil {
		return nil, err
	}
	if len(images) == 0 {
		s.logger.Warn("No image files found", logging.F("localDir", s.cfg.LocalDir))
		return nil, nil
	}

	reqCtx := api.NewRequestContext(s.cfg.Profile, types.RequestTypeListOrSearch)
	logger := s.logger.WithTraceID(reqCtx.TraceID)
	logger.Info("Starting synchronization",
		logging.F("images", len(images)),
		logging.F("rootFolderId", s.cfg.RootFolderID),
		logging.F("dryRun", s.cfg.DryRun),
	)

	for _, img := range images {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.processImage(ctx, reqCtx, img); err != nil {
			return nil, err
		}
	}

	if s.cfg.DryRun {
		logger.Info("Dry run complete, batch not executed")
		return nil, nil
	}

	s.events.BatchStarted(s.batch.Len())

	updateCtx := api.NewRequestContext(s.cfg.Profile, types.RequestTypeUpdate)
	outcomes, err := s.batch.Execute(ctx, updateCtx)
	if err != nil {
		return nil, err
	}

	for _, outcome := range outcomes {
		s.events.OutcomeReceived(outcome)
	}

	logger.Info("Synchronization complete",
		logging.F("outcomes", len(outcomes)),
	)
	return outcomes, nil
}

// processImage runs one image through extract, build, resolve, and
// enqueue. Only remote query and queue errors propagate; extraction
// problems and resolution misses are contained here.
func (s *Synchronizer) processImage(ctx context.Context, reqCtx *types.RequestContext, img types.LocalImage) error {
	s.events.ImageStarted(img)

	tags, err := s.extractor.ExtractTags(ctx, img.AbsPath)
	if err != nil {
		s.logger.Warn("Tag extraction failed",
			logging.F("path", img.RelativePath),
			logging.F("error", err.Error()),
		)
		s.events.ExtractFailed(img, err)
		return nil
	}
	if len(tags) == 0 {
		s.events.NoTags(img)
		return nil
	}
	img.Tags = tags
	s.events.TagsExtracted(img, tags)

	description := BuildDescription(tags)

	matches, err := s.resolver.Resolve(ctx, reqCtx, s.cfg.RootFolderID, img.RelativePath)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		s.events.NoRemoteMatch(img)
		return nil
	}
	s.events.Resolved(img, matches)

	for _, file := range matches {
		if s.cfg.DryRun {
			s.events.ItemQueued(img, file)
			continue
		}
		item := types.BatchItem{
			Token:       uuid.New().String(),
			FileID:      file.ID,
			Description: description,
			LocalPath:   img.RelativePath,
		}
		if err := s.batch.Add(item); err != nil {
			return err
		}
		s.events.ItemQueued(img, file)
	}
	return nil
}

func (s *Synchronizer) extensions() []string {
	if len(s.cfg.Extensions) > 0 {
		return s.cfg.Extensions
	}
	return utils.ImageExtensions
}
