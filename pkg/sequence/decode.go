package sequence

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	// Register decoders for image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrSourceDecode is matched by every SourceDecodeError.
var ErrSourceDecode = errors.New("cannot decode source image")

// SourceDecodeError names the source that could not be read or decoded.
type SourceDecodeError struct {
	Path string
	Err  error
}

func (e *SourceDecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *SourceDecodeError) Unwrap() error { return e.Err }

// Is reports ErrSourceDecode so callers can use errors.Is.
func (e *SourceDecodeError) Is(target error) bool { return target == ErrSourceDecode }

// Decoder turns a source reference into an image.
type Decoder interface {
	Decode(source string) (image.Image, error)
}

// DecoderFunc adapts a function to Decoder.
type DecoderFunc func(source string) (image.Image, error)

// Decode calls f.
func (f DecoderFunc) Decode(source string) (image.Image, error) { return f(source) }

// FileDecoder decodes image files in any format registered with the image
// package: JPEG, PNG, GIF (first frame), BMP, TIFF and WebP.
type FileDecoder struct{}

// Decode opens and decodes the file at path. The file is closed before
// returning.
func (FileDecoder) Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return m, nil
}

var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".bmp": true, ".tif": true, ".tiff": true, ".webp": true,
}

// IsImageFile reports whether name has an extension FileDecoder handles.
func IsImageFile(name string) bool {
	return imageExts[strings.ToLower(filepath.Ext(name))]
}

// CollectDir returns the image files directly inside dir, sorted by name.
func CollectDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !IsImageFile(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}
