package sync

import "github.com/dmateos/tagsync/internal/types"

// Events receives one notification per pipeline phase per image and one
// per batch outcome. Implementations render them for an operator (console,
// log file); the engine itself never formats output.
type Events interface {
	ImageStarted(img types.LocalImage)
	TagsExtracted(img types.LocalImage, tags []string)
	ExtractFailed(img types.LocalImage, err error)
	NoTags(img types.LocalImage)
	Resolved(img types.LocalImage, matches []*types.RemoteFile)
	NoRemoteMatch(img types.LocalImage)
	ItemQueued(img types.LocalImage, file *types.RemoteFile)
	BatchStarted(itemCount int)
	OutcomeReceived(outcome types.UpdateOutcome)
}

// NoopEvents discards all events
type NoopEvents struct{}

func (NoopEvents) ImageStarted(img types.LocalImage) {}

func (NoopEvents) TagsExtracted(img types.LocalImage, tags []string) {}

func (NoopEvents) ExtractFailed(img types.LocalImage, err error) {}

func (NoopEvents) NoTags(img types.LocalImage) {}

func (NoopEvents) Resolved(img types.LocalImage, matches []*types.RemoteFile) {}

func (NoopEvents) NoRemoteMatch(img types.LocalImage) {}

func (NoopEvents) ItemQueued(img types.LocalImage, file *types.RemoteFile) {}

func (NoopEvents) BatchStarted(itemCount int) {}

func (NoopEvents) OutcomeReceived(outcome types.UpdateOutcome) {}
