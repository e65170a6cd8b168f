package valueobjects

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestImage(t *testing.T, format ImageFormat) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 12, 8))
	for x := 0; x < 12; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{200, 30, 30, 255})
		}
	}

	var buf bytes.Buffer
	switch format {
	case PNG:
		require.NoError(t, png.Encode(&buf, img))
	case JPEG:
		require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))
	default:
		t.Fatalf("unsupported format: %s", format)
	}
	return buf.Bytes()
}

func TestNewImageData(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantErr bool
	}{
		{
			name:    "empty data should fail",
			data:    []byte{},
			wantErr: true,
		},
		{
			name:    "nil data should fail",
			data:    nil,
			wantErr: true,
		},
		{
			name:    "invalid image data should fail",
			data:    []byte{0x00, 0x01, 0x02},
			wantErr: true,
		},
		{
			name:    "png should decode",
			data:    createTestImage(t, PNG),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewImageData(tt.data)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDecodeImageData(t *testing.T) {
	t.Run("keeps the raw bytes of the stream", func(t *testing.T) {
		raw := createTestImage(t, PNG)

		img, err := DecodeImageData(bytes.NewReader(raw))

		require.NoError(t, err)
		assert.Equal(t, raw, img.Data())
		assert.Equal(t, PNG, img.Format())
		assert.Equal(t, "image/png", img.MimeType())
		assert.Equal(t, 12, img.Width())
		assert.Equal(t, 8, img.Height())
	})

	t.Run("jpeg", func(t *testing.T) {
		raw := createTestImage(t, JPEG)

		img, err := DecodeImageData(bytes.NewReader(raw))

		require.NoError(t, err)
		assert.Equal(t, JPEG, img.Format())
		assert.Equal(t, raw, img.Data())
	})

	t.Run("html is rejected", func(t *testing.T) {
		_, err := DecodeImageData(bytes.NewReader([]byte("<html>not found</html>")))

		assert.Error(t, err)
	})
}
