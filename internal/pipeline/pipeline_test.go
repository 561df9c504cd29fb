package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/color"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/sofiwisher/sofiwisher/internal/ocr"
)

type mockExtractor struct {
	extractFunc func(ctx context.Context, paths []string) []ocr.Text
	called      bool
}

func (m *mockExtractor) Extract(ctx context.Context, paths []string) []ocr.Text {
	m.called = true
	return m.extractFunc(ctx, paths)
}

type mockConverter struct {
	convertFunc func(ctx context.Context, src string, dst string) error
}

func (m *mockConverter) Convert(ctx context.Context, src string, dst string) error {
	return m.convertFunc(ctx, src, dst)
}

func newImageServer(t *testing.T, width int, height int) *httptest.Server {
	t.Helper()

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, imaging.New(width, height, color.White), imaging.PNG); err != nil {
		t.Fatalf("Failed to encode image: %+v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/drop.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(buf.Bytes())
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestConfig(t *testing.T) *Config {
	t.Helper()

	config := NewConfig()
	config.WorkDir = t.TempDir()
	config.Converter = ConverterNative
	config.Timeout = 10 * time.Second
	return config
}

func assertEmptyDir(t *testing.T, dir string) {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read %s: %+v", dir, err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected workspace to be removed, found %d entries", len(entries))
	}
}

func TestPipeline_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("segments are extracted in order", func(t *testing.T) {
		server := newImageServer(t, 90, 40)
		config := newTestConfig(t)

		extractor := &mockExtractor{
			extractFunc: func(_ context.Context, paths []string) []ocr.Text {
				texts := make([]ocr.Text, 0, len(paths))
				for i, path := range paths {
					if filepath.Base(path) != fmt.Sprintf("card_%d.png", i+1) {
						t.Errorf("Unexpected segment path %q", path)
					}
					if _, err := os.Stat(path); err != nil {
						t.Errorf("Expected segment to exist during extraction: %+v", err)
					}
					texts = append(texts, ocr.Present(fmt.Sprintf("card %d", i+1)))
				}
				texts[1] = ocr.Absent()
				return texts
			},
		}

		p := New(config, NewNativeConverter(), extractor, WithHTTPClient(server.Client()))
		texts, err := p.Run(ctx, server.URL+"/drop.png")
		if err != nil {
			t.Fatalf("Unexpected error: %+v", err)
		}

		if len(texts) != 3 {
			t.Fatalf("Expected 3 texts, got %d", len(texts))
		}
		if texts[0].Value != "card 1" || texts[1].Valid || texts[2].Value != "card 3" {
			t.Errorf("Unexpected texts %+v", texts)
		}

		assertEmptyDir(t, config.WorkDir)
	})

	t.Run("fetch failure aborts the run", func(t *testing.T) {
		server := newImageServer(t, 90, 40)
		config := newTestConfig(t)
		extractor := &mockExtractor{}

		p := New(config, NewNativeConverter(), extractor, WithHTTPClient(server.Client()))
		_, err := p.Run(ctx, server.URL+"/gone.png")

		var transferErr *TransferError
		if !errors.As(err, &transferErr) {
			t.Fatalf("Expected *TransferError, got %+v", err)
		}
		if extractor.called {
			t.Error("Extractor should not be called after a fetch failure")
		}

		assertEmptyDir(t, config.WorkDir)
	})

	t.Run("conversion failure aborts the run", func(t *testing.T) {
		server := newImageServer(t, 90, 40)
		config := newTestConfig(t)
		extractor := &mockExtractor{}
		converter := &mockConverter{
			convertFunc: func(_ context.Context, src string, _ string) error {
				return &ConversionError{Src: src, Err: errors.New("exit status 1")}
			},
		}

		p := New(config, converter, extractor, WithHTTPClient(server.Client()))
		_, err := p.Run(ctx, server.URL+"/drop.png")

		var convErr *ConversionError
		if !errors.As(err, &convErr) {
			t.Fatalf("Expected *ConversionError, got %+v", err)
		}
		if extractor.called {
			t.Error("Extractor should not be called after a conversion failure")
		}

		assertEmptyDir(t, config.WorkDir)
	})

	t.Run("segmentation failure aborts the run", func(t *testing.T) {
		server := newImageServer(t, 2, 40)
		config := newTestConfig(t)
		extractor := &mockExtractor{}

		p := New(config, NewNativeConverter(), extractor, WithHTTPClient(server.Client()))
		_, err := p.Run(ctx, server.URL+"/drop.png")

		var segErr *SegmentationError
		if !errors.As(err, &segErr) {
			t.Fatalf("Expected *SegmentationError, got %+v", err)
		}
		if extractor.called {
			t.Error("Extractor should not be called after a segmentation failure")
		}
	})

	t.Run("timeout reaches the stages", func(t *testing.T) {
		server := newImageServer(t, 90, 40)
		config := newTestConfig(t)
		config.Timeout = time.Millisecond
		converter := &mockConverter{
			convertFunc: func(ctx context.Context, src string, _ string) error {
				<-ctx.Done()
				return &ConversionError{Src: src, Err: ctx.Err()}
			},
		}

		p := New(config, converter, &mockExtractor{}, WithHTTPClient(server.Client()))
		_, err := p.Run(ctx, server.URL+"/drop.png")
		if err == nil {
			t.Fatal("Expected an error after the timeout")
		}
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("Expected context.DeadlineExceeded, got %+v", err)
		}
	})
}

func TestNewConfig(t *testing.T) {
	config := NewConfig()

	if config.SegmentCount != 3 {
		t.Errorf("Expected SegmentCount 3, got %d", config.SegmentCount)
	}

	if config.Converter != ConverterDwebp {
		t.Errorf("Expected Converter %q, got %q", ConverterDwebp, config.Converter)
	}

	if config.WorkDir == "" {
		t.Error("Expected WorkDir to be set")
	}
}
