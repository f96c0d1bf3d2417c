package sink

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

type fakeArtifact struct {
	img image.Image
}

func (f fakeArtifact) Image() image.Image { return f.img }

func solid(c color.RGBA) fakeArtifact {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return fakeArtifact{img: img}
}

func TestPathFor(t *testing.T) {
	got := PathFor("output", "story_0")
	want := filepath.Join("output", "story_0_visual_story.png")
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestFileSink_Persist(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "output")

	path, err := New(nil).Persist(solid(color.RGBA{R: 255, A: 255}), dir, "story_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != PathFor(dir, "story_1") {
		t.Errorf("unexpected path %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if r, _, _, _ := img.At(0, 0).RGBA(); r>>8 != 255 {
		t.Errorf("unexpected pixel %v", img.At(0, 0))
	}
}

func TestFileSink_PersistOverwrites(t *testing.T) {
	dir := t.TempDir()
	s := New(nil)

	first, err := s.Persist(solid(color.RGBA{R: 255, A: 255}), dir, "story_0")
	if err != nil {
		t.Fatalf("first persist: %v", err)
	}
	second, err := s.Persist(solid(color.RGBA{B: 255, A: 255}), dir, "story_0")
	if err != nil {
		t.Fatalf("second persist: %v", err)
	}
	if first != second {
		t.Errorf("expected same path, got %s and %s", first, second)
	}

	// Повтор того же артефакта даёт те же байты
	third, _ := s.Persist(solid(color.RGBA{B: 255, A: 255}), dir, "story_0")
	a, _ := os.ReadFile(second)
	b, _ := os.ReadFile(third)
	if !bytes.Equal(a, b) {
		t.Error("persisting the same artifact twice should produce identical files")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected a single file, got %d (temp files leaked?)", len(entries))
	}
}

func TestFileSink_DirIsAFile(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := New(nil).Persist(solid(color.RGBA{A: 255}), blocker, "story_0")
	if !errors.Is(err, ErrIOFailure) {
		t.Errorf("expected ErrIOFailure, got %v", err)
	}
}

func TestFileSink_NilArtifact(t *testing.T) {
	_, err := New(nil).Persist(fakeArtifact{}, t.TempDir(), "story_0")
	if !errors.Is(err, ErrIOFailure) {
		t.Errorf("expected ErrIOFailure, got %v", err)
	}
}
