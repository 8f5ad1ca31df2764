package utils

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestIsImageFile(t *testing.T) {
	for _, name := range []string{"a.jpg", "b.JPEG", "c.png", "d.webp", "e.bmp"} {
		if !IsImageFile(name) {
			t.Errorf("%s should be an image file", name)
		}
	}
	for _, name := range []string{"a.txt", "b", "c.tiff"} {
		if IsImageFile(name) {
			t.Errorf("%s should not be an image file", name)
		}
	}
}

func TestGenerateOutputFilename(t *testing.T) {
	got := GenerateOutputFilename("/data/cat.photo.png", "out", "pre_", "_1024x1024", "webp")
	want := filepath.Join("out", "pre_cat.photo_1024x1024.webp")
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}

	got = GenerateOutputFilename("cat.png", "out", "", "", "")
	if got != filepath.Join("out", "cat.png") {
		t.Errorf("Expected input extension to be kept, got %s", got)
	}
}

func TestCollectInputs(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := EnsureDir(sub); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"b.png", "a.jpg", "notes.txt", "sub/c.webp"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := CollectInputs(dir)
	if err != nil {
		t.Fatalf("CollectInputs failed: %v", err)
	}
	want := []string{filepath.Join(dir, "a.jpg"), filepath.Join(dir, "b.png"), filepath.Join(sub, "c.webp")}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("Expected %v, got %v", want, files)
	}

	single, err := CollectInputs(filepath.Join(dir, "notes.txt"))
	if err != nil {
		t.Fatalf("CollectInputs failed: %v", err)
	}
	if len(single) != 1 {
		t.Errorf("Expected a single explicit file, got %v", single)
	}

	if _, err := CollectInputs(filepath.Join(dir, "missing")); err == nil {
		t.Error("Expected an error for a missing path")
	}
	if !DirExists(sub) || FileExists(sub) {
		t.Error("Unexpected existence checks for a directory")
	}
}
