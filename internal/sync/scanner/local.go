package scanner

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/dmateos/tagsync/internal/types"
	"github.com/dmateos/tagsync/internal/utils"
)

// ListImages walks root recursively and returns every regular file whose
// suffix matches one of the extensions (case-insensitive), in directory
// enumeration order. Relative paths are slash-separated regardless of
// platform. An unreadable root or subtree is a hard error: the caller
// cannot make progress on any image without a complete enumeration.
func ListImages(ctx context.Context, root string, extensions []string) ([]types.LocalImage, error) {
	var images []types.LocalImage

	err := filepath.WalkDir(root, func(current string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if d.Type()&os.ModeSymlink != 0 {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !utils.IsImagePath(current, extensions) {
			return nil
		}

		rel, err := filepath.Rel(root, current)
		if err != nil {
			return err
		}
		rel = path.Clean(filepath.ToSlash(rel))

		images = append(images, types.LocalImage{
			RelativePath: rel,
			AbsPath:      current,
		})
		return nil
	})
	if err != nil {
		return nil, utils.NewAppError(utils.NewCLIError(utils.ErrCodeLocalRootUnreadable,
			"Failed to enumerate local images: "+err.Error()).
			WithContext("root", root).
			Build())
	}

	return images, nil
}
