package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// Converter converts the image at src into a PNG image at dst.
type Converter interface {
	Convert(ctx context.Context, src string, dst string) error
}

// NewConverter returns the Converter selected by Config.Converter.
func NewConverter(config *Config) (Converter, error) {
	switch config.Converter {
	case ConverterDwebp, "":
		return NewDwebpConverter(config.DwebpPath), nil

	case ConverterNative:
		return NewNativeConverter(), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownConverter, config.Converter)
	}
}

// DwebpConverter converts WebP images with the external dwebp program.
type DwebpConverter struct {
	path string
}

var _ Converter = (*DwebpConverter)(nil)

// NewDwebpConverter creates a DwebpConverter running the given executable.
func NewDwebpConverter(path string) *DwebpConverter {
	if path == "" {
		path = "dwebp"
	}
	return &DwebpConverter{path: path}
}

// Convert runs dwebp and waits for it to exit.
// The conversion fails when dwebp exits with a non-zero status, writes to stderr,
// or leaves dst missing or empty. The process is killed when ctx is done.
func (c *DwebpConverter) Convert(ctx context.Context, src string, dst string) error {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.path, "-quiet", src, "-o", dst)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}
		return &ConversionError{Src: src, Err: err}
	}

	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		return &ConversionError{Src: src, Err: errors.New(msg)}
	}

	if err := checkOutput(dst); err != nil {
		return &ConversionError{Src: src, Err: err}
	}
	return nil
}

// NativeConverter decodes the image in-process.
// WebP and every format known to the image package can be read.
type NativeConverter struct{}

var _ Converter = (*NativeConverter)(nil)

// NewNativeConverter creates a NativeConverter.
func NewNativeConverter() *NativeConverter {
	return &NativeConverter{}
}

// Convert decodes src and encodes it as PNG to dst.
func (c *NativeConverter) Convert(ctx context.Context, src string, dst string) error {
	if err := ctx.Err(); err != nil {
		return &ConversionError{Src: src, Err: err}
	}

	img, err := imaging.Open(src)
	if err != nil {
		return &ConversionError{Src: src, Err: err}
	}

	out, err := os.Create(dst)
	if err != nil {
		return &ConversionError{Src: src, Err: err}
	}

	if err := imaging.Encode(out, img, imaging.PNG); err != nil {
		_ = out.Close()
		return &ConversionError{Src: src, Err: err}
	}

	if err := out.Close(); err != nil {
		return &ConversionError{Src: src, Err: err}
	}
	return nil
}

func checkOutput(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return ErrEmptyOutput
	}
	if err != nil {
		return err
	}

	if info.Size() == 0 {
		return ErrEmptyOutput
	}
	return nil
}
