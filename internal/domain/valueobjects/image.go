package valueobjects

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/webp"
)

type ImageFormat string

const (
	JPEG ImageFormat = "jpeg"
	PNG  ImageFormat = "png"
	GIF  ImageFormat = "gif"
	WEBP ImageFormat = "webp"
)

// ImageData はデコード済みの画像と、その元のバイト列を保持します。
// 表示とダウンロードには元のバイト列をそのまま使います。
type ImageData struct {
	data   []byte
	format ImageFormat
	img    image.Image
}

func NewImageData(data []byte) (*ImageData, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("image data cannot be empty")
	}
	return DecodeImageData(bytes.NewReader(data))
}

// DecodeImageData はストリームを読みながらデコードし、読んだバイト列も保持します。
func DecodeImageData(r io.Reader) (*ImageData, error) {
	var buf bytes.Buffer
	img, name, err := image.Decode(io.TeeReader(r, &buf))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	format, err := toImageFormat(name)
	if err != nil {
		return nil, err
	}

	// デコーダが末尾まで読まない場合があるので残りも取り込む
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return &ImageData{
		data:   buf.Bytes(),
		format: format,
		img:    img,
	}, nil
}

func (i *ImageData) Data() []byte {
	return i.data
}

func (i *ImageData) Format() ImageFormat {
	return i.format
}

func (i *ImageData) Image() image.Image {
	return i.img
}

func (i *ImageData) Width() int {
	return i.img.Bounds().Dx()
}

func (i *ImageData) Height() int {
	return i.img.Bounds().Dy()
}

func (i *ImageData) MimeType() string {
	return "image/" + string(i.format)
}

func toImageFormat(name string) (ImageFormat, error) {
	switch name {
	case "jpeg":
		return JPEG, nil
	case "png":
		return PNG, nil
	case "gif":
		return GIF, nil
	case "webp":
		return WEBP, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", name)
	}
}
