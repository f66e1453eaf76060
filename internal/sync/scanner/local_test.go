package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmateos/tagsync/internal/utils"
)

func writeFile(t *testing.T, root, rel string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte("data"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestListImages(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "cat.jpg")
	writeFile(t, root, "a/b/beach.jpeg")
	writeFile(t, root, "a/SHOUT.PNG")
	writeFile(t, root, "notes.txt")
	writeFile(t, root, "a/readme.md")

	images, err := ListImages(context.Background(), root, utils.ImageExtensions)
	if err != nil {
		t.Fatalf("ListImages failed: %v", err)
	}

	got := make(map[string]bool)
	for _, img := range images {
		got[img.RelativePath] = true
		if img.AbsPath == "" {
			t.Errorf("missing AbsPath for %s", img.RelativePath)
		}
	}

	want := []string{"cat.jpg", "a/b/beach.jpeg", "a/SHOUT.PNG"}
	if len(got) != len(want) {
		t.Fatalf("got %d images, want %d: %v", len(got), len(want), got)
	}
	for _, rel := range want {
		if !got[rel] {
			t.Errorf("missing image %s", rel)
		}
	}
}

func TestListImagesEmptyDir(t *testing.T) {
	images, err := ListImages(context.Background(), t.TempDir(), utils.ImageExtensions)
	if err != nil {
		t.Fatalf("ListImages failed: %v", err)
	}
	if len(images) != 0 {
		t.Errorf("expected no images, got %d", len(images))
	}
}

func TestListImagesMissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "does-not-exist")

	_, err := ListImages(context.Background(), root, utils.ImageExtensions)
	if err == nil {
		t.Fatal("expected error for missing root")
	}

	appErr, ok := err.(*utils.AppError)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.CLIError.Code != utils.ErrCodeLocalRootUnreadable {
		t.Errorf("expected code %s, got %s", utils.ErrCodeLocalRootUnreadable, appErr.CLIError.Code)
	}
}

func TestListImagesCancelledContext(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "cat.jpg")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := ListImages(ctx, root, utils.ImageExtensions); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
