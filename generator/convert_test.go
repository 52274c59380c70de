package generator

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	ico "github.com/sergeymakinen/go-ico"

	"iconforge/common"
)

// writeWebP writes a small WebP image to path.
func writeWebP(t *testing.T, path string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x * 8), uint8(y * 8), 120, 255})
		}
	}
	if _, err := common.WriteImage(img, path, common.WEBP, common.EncodeOptions{WebPQuality: 90}, common.AlwaysOverwrite); err != nil {
		t.Fatalf("Failed to write webp fixture: %v", err)
	}
}

func TestConvertDirectorySkipsExisting(t *testing.T) {
	tmpDir := t.TempDir()
	writeWebP(t, filepath.Join(tmpDir, "a.webp"))
	writeWebP(t, filepath.Join(tmpDir, "b.webp"))

	sentinel := []byte("pre-existing ico")
	if err := os.WriteFile(filepath.Join(tmpDir, "a.ico"), sentinel, 0644); err != nil {
		t.Fatalf("Failed to write sentinel: %v", err)
	}

	gen := New(testConfig(tmpDir))
	results, err := gen.ConvertDirectory()
	if err != nil {
		t.Fatalf("ConvertDirectory failed: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		switch r.Name {
		case "a.ico":
			if !r.Skipped {
				t.Error("Expected a.ico to be skipped")
			}
		case "b.ico":
			if r.Skipped || r.Err != nil {
				t.Errorf("Expected b.ico generated, skipped=%v err=%v", r.Skipped, r.Err)
			}
		default:
			t.Errorf("Unexpected result name %s", r.Name)
		}
	}

	// a.ico bytes untouched
	got, err := os.ReadFile(filepath.Join(tmpDir, "a.ico"))
	if err != nil {
		t.Fatalf("Failed to read a.ico: %v", err)
	}
	if !bytes.Equal(got, sentinel) {
		t.Error("Skip policy modified a.ico")
	}

	// b.ico holds one frame at the configured size
	f, err := os.Open(filepath.Join(tmpDir, "b.ico"))
	if err != nil {
		t.Fatalf("Failed to open b.ico: %v", err)
	}
	defer f.Close()

	frames, err := ico.DecodeAll(f)
	if err != nil {
		t.Fatalf("DecodeAll failed: %v", err)
	}
	if len(frames) != 1 {
		t.Fatalf("Expected a single frame, got %d", len(frames))
	}
	if frames[0].Bounds().Dx() != 64 || frames[0].Bounds().Dy() != 64 {
		t.Errorf("Expected 64x64 frame, got %dx%d", frames[0].Bounds().Dx(), frames[0].Bounds().Dy())
	}
}

func TestConvertDirectoryOverwrite(t *testing.T) {
	tmpDir := t.TempDir()
	writeWebP(t, filepath.Join(tmpDir, "a.webp"))

	if err := os.WriteFile(filepath.Join(tmpDir, "a.ico"), []byte("stale"), 0644); err != nil {
		t.Fatalf("Failed to write sentinel: %v", err)
	}

	cfg := testConfig(tmpDir)
	cfg.Convert.Overwrite = "always"

	gen := New(cfg)
	results, err := gen.ConvertDirectory()
	if err != nil {
		t.Fatalf("ConvertDirectory failed: %v", err)
	}
	if len(results) != 1 || results[0].Skipped || results[0].Err != nil {
		t.Fatalf("Expected a.ico regenerated, got %+v", results)
	}

	f, err := os.Open(filepath.Join(tmpDir, "a.ico"))
	if err != nil {
		t.Fatalf("Failed to open a.ico: %v", err)
	}
	defer f.Close()
	if _, err := ico.Decode(f); err != nil {
		t.Errorf("Replaced a.ico does not decode: %v", err)
	}
}

func TestConvertDirectoryEmpty(t *testing.T) {
	gen := New(testConfig(t.TempDir()))
	results, err := gen.ConvertDirectory()
	if err != nil {
		t.Fatalf("ConvertDirectory failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Expected no results, got %d", len(results))
	}
}

func TestConvertDirectoryIgnoresOtherFiles(t *testing.T) {
	tmpDir := t.TempDir()
	writeWebP(t, filepath.Join(tmpDir, "a.webp"))
	if err := os.WriteFile(filepath.Join(tmpDir, "notes.txt"), []byte("hello"), 0644); err != nil {
		t.Fatalf("Failed to write txt: %v", err)
	}
	if err := os.Mkdir(filepath.Join(tmpDir, "nested.webp"), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	gen := New(testConfig(tmpDir))
	results, err := gen.ConvertDirectory()
	if err != nil {
		t.Fatalf("ConvertDirectory failed: %v", err)
	}
	if len(results) != 1 || results[0].Name != "a.ico" {
		t.Errorf("Expected only a.ico, got %+v", results)
	}
}
