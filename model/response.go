package model

// GenerateResponse is the JSON body returned by POST /generate.
type GenerateResponse struct {
	Success     bool   `json:"success"`
	RequestID   string `json:"requestId,omitempty"`
	FinalPrompt string `json:"finalPrompt,omitempty"`
	// 画像が 0 件・一部失敗などの補足
	Message string         `json:"message,omitempty"`
	Error   string         `json:"error,omitempty"`
	Images  []ImagePayload `json:"images"`
}

// ImagePayload represents a single generated image, or the reason it could not be loaded.
type ImagePayload struct {
	ID    string `json:"id"`
	Index int    `json:"index"`
	// ダウンロードリンクには元の URL をそのまま使う
	URL    string `json:"url"`
	Data   string `json:"data,omitempty"`
	Type   string `json:"type,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Error  string `json:"error,omitempty"`
}

// OK reports whether the image was fetched and decoded.
func (p ImagePayload) OK() bool {
	return p.Error == "" && p.Data != ""
}

// Failed counts images that carry an error instead of data.
func (r *GenerateResponse) Failed() int {
	n := 0
	for _, img := range r.Images {
		if !img.OK() {
			n++
		}
	}
	return n
}
