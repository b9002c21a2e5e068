// Package media turns uploaded image files into embedded data references
// ("data:<mime>;base64,...") that can be stored inside a collection record.
//
// Reading an image is the one asynchronous step in the app. Load starts the
// read and returns a single-shot task; the record that references the image
// is written only after Wait returns, so an abandoned read leaves no partial
// state behind.
package media

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrEmptyImage       = errors.New("image is empty")
	ErrImageTooLarge    = errors.New("image is too large")
	ErrUnsupportedImage = errors.New("unsupported image type")
)

// DefaultMaxBytes is used when no limit is given
const DefaultMaxBytes = 2 << 20

var allowedTypes = []string{"image/png", "image/jpeg", "image/gif", "image/webp"}

// ImageTask is a single-shot image read
type ImageTask struct {
	done chan struct{}
	ref  string
	err  error
}

// Load starts reading r in the background. maxBytes <= 0 means DefaultMaxBytes.
// If r is an io.Closer it is closed when the read finishes.
func Load(r io.Reader, maxBytes int64) *ImageTask {
	t := &ImageTask{done: make(chan struct{})}
	go func() {
		defer close(t.done)
		if c, ok := r.(io.Closer); ok {
			defer c.Close()
		}
		t.ref, t.err = read(r, maxBytes)
	}()
	return t
}

// Done is closed once the read has finished
func (t *ImageTask) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the read finishes or ctx ends, then returns the data
// reference. Giving up on ctx does not stop the read; its result is discarded.
func (t *ImageTask) Wait(ctx context.Context) (string, error) {
	select {
	case <-t.done:
		return t.ref, t.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func read(r io.Reader, maxBytes int64) (string, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return "", fmt.Errorf("%w: limit is %d bytes", ErrImageTooLarge, maxBytes)
	}
	return Encode(data)
}

// Encode validates data as a supported image and returns its data reference
func Encode(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyImage
	}
	mtype := mimetype.Detect(data)
	if !isAllowed(mtype) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedImage, mtype.String())
	}
	return "data:" + mtype.String() + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// IsDataRef reports whether s looks like an embedded image reference
func IsDataRef(s string) bool {
	return strings.HasPrefix(s, "data:image/") && strings.Contains(s, ";base64,")
}

func isAllowed(mtype *mimetype.MIME) bool {
	for _, t := range allowedTypes {
		if mtype.Is(t) {
			return true
		}
	}
	return false
}
