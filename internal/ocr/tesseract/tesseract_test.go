package tesseract

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/draw"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/sofiwisher/sofiwisher/internal/ocr"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// ensureTesseractAvailable checks that the tesseract binary is reachable.
func ensureTesseractAvailable(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("tesseract"); err != nil {
		t.Skip("tesseract not installed in PATH")
	}
}

// writeCard renders top at the top of a white card and bottom near its lower edge.
func writeCard(t *testing.T, top string, bottom string) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 200, 160))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)

	for _, line := range []struct {
		text string
		y    int
	}{{top, 30}, {bottom, 140}} {
		d := &font.Drawer{
			Dst:  img,
			Src:  image.Black,
			Face: basicfont.Face7x13,
			Dot:  fixed.P(10, line.y),
		}
		d.DrawString(line.text)
	}

	path := filepath.Join(t.TempDir(), "card_1.png")
	if err := imaging.Save(img, path); err != nil {
		t.Fatalf("Failed to write card: %+v", err)
	}
	return path
}

func TestCropImage(t *testing.T) {
	path := writeCard(t, "Top", "Bottom")

	data, err := cropImage(path, image.Rect(0, 120, 200, 160))
	if err != nil {
		t.Fatalf("Unexpected error: %+v", err)
	}

	config, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Unexpected error: %+v", err)
	}

	if format != "png" {
		t.Errorf("Expected png, got %s", format)
	}

	if config.Width != 200 || config.Height != 40 {
		t.Errorf("Expected 200x40, got %dx%d", config.Width, config.Height)
	}
}

func TestCropImage_MissingFile(t *testing.T) {
	if _, err := cropImage(filepath.Join(t.TempDir(), "missing.png"), image.Rect(0, 0, 1, 1)); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

func TestEngine_NewSession_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewEngine("eng").NewSession(ctx); err == nil {
		t.Error("Expected an error for a canceled context")
	}
}

func TestEngineRecognize(t *testing.T) {
	ensureTesseractAvailable(t)

	path := writeCard(t, "Bleach", "Hello Naruto")
	extractor := ocr.NewExtractor(NewEngine("eng"), &ocr.Config{ROIFraction: 0.25})

	texts := extractor.Extract(context.Background(), []string{path})
	if len(texts) != 1 {
		t.Fatalf("Expected 1 text, got %d", len(texts))
	}

	if !texts[0].Valid {
		t.Fatal("Expected the card to be read")
	}

	got := strings.ToLower(texts[0].Value)
	if !strings.Contains(got, "hello") {
		t.Fatalf("Unexpected OCR output: %q", texts[0].Value)
	}
	if strings.Contains(got, "bleach") {
		t.Errorf("Expected text outside of the region to be ignored, got %q", texts[0].Value)
	}
}
