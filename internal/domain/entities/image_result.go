package entities

import (
	"github.com/harikrishnad1997/FLUX-1-Finetuning/internal/domain/valueobjects"
)

// ImageEntry は生成サービスが返した URL 1 件と、その取得結果です。
// image と err のどちらか一方だけが設定されます。
type ImageEntry struct {
	index int
	url   string
	image *valueobjects.ImageData
	err   error
}

func NewImageEntry(index int, url string, image *valueobjects.ImageData, err error) ImageEntry {
	if err != nil {
		image = nil
	}
	return ImageEntry{
		index: index,
		url:   url,
		image: image,
		err:   err,
	}
}

func (e ImageEntry) Index() int {
	return e.index
}

func (e ImageEntry) URL() string {
	return e.url
}

func (e ImageEntry) Image() *valueobjects.ImageData {
	return e.image
}

func (e ImageEntry) Err() error {
	return e.err
}

func (e ImageEntry) OK() bool {
	return e.err == nil && e.image != nil
}

// ImageResult は生成サービスが返した順序のままの取得結果一覧です。
type ImageResult struct {
	requestID   GenerationRequestID
	finalPrompt string
	entries     []ImageEntry
}

func NewImageResult(requestID GenerationRequestID, finalPrompt string, entries []ImageEntry) *ImageResult {
	return &ImageResult{
		requestID:   requestID,
		finalPrompt: finalPrompt,
		entries:     entries,
	}
}

func (r *ImageResult) RequestID() GenerationRequestID {
	return r.requestID
}

func (r *ImageResult) FinalPrompt() string {
	return r.finalPrompt
}

func (r *ImageResult) Entries() []ImageEntry {
	return r.entries
}

func (r *ImageResult) HasImages() bool {
	for _, e := range r.entries {
		if e.OK() {
			return true
		}
	}
	return false
}

func (r *ImageResult) FailedCount() int {
	n := 0
	for _, e := range r.entries {
		if !e.OK() {
			n++
		}
	}
	return n
}
