package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)

func TestLoad_PNGProducesDataRef(t *testing.T) {
	t.Parallel()

	ref, err := Load(bytes.NewReader(pngBytes), 1024).Wait(context.Background())

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "data:image/png;base64,"))
	assert.True(t, IsDataRef(ref))

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(ref, "data:image/png;base64,"))
	require.NoError(t, err)
	assert.Equal(t, pngBytes, decoded)
}

func TestLoad_GIF(t *testing.T) {
	t.Parallel()

	ref, err := Load(strings.NewReader("GIF89a"+strings.Repeat("\x00", 16)), 0).Wait(context.Background())

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "data:image/gif;base64,"))
}

func TestLoad_Rejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		max     int64
		wantErr error
	}{
		{"empty", nil, 1024, ErrEmptyImage},
		{"text", []byte("just some notes, not a picture"), 1024, ErrUnsupportedImage},
		{"too large", pngBytes, 8, ErrImageTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Load(bytes.NewReader(tt.data), tt.max).Wait(context.Background())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestImageTask_WaitHonoursContext(t *testing.T) {
	t.Parallel()

	pr, pw := io.Pipe()
	defer pw.Close()
	task := Load(pr, 1024)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := task.Wait(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	select {
	case <-task.Done():
		t.Fatal("read should still be pending")
	default:
	}
}

type closeTracker struct {
	io.Reader
	closed bool
}

func (c *closeTracker) Close() error {
	c.closed = true
	return nil
}

func TestLoad_ClosesReader(t *testing.T) {
	t.Parallel()

	r := &closeTracker{Reader: bytes.NewReader(pngBytes)}
	task := Load(r, 0)
	<-task.Done()

	assert.True(t, r.closed)
	_, err := task.Wait(context.Background())
	assert.NoError(t, err)
}

func TestIsDataRef(t *testing.T) {
	t.Parallel()

	assert.False(t, IsDataRef("https://example.com/a.png"))
	assert.False(t, IsDataRef("data:text/plain;base64,AA=="))
}
