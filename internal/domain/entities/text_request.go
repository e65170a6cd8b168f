package entities

type TextRequest struct {
	prompt string

	// ログ相関用
	requestID GenerationRequestID
}

func NewTextRequest(prompt string, requestID GenerationRequestID) *TextRequest {
	return &TextRequest{
		prompt:    prompt,
		requestID: requestID,
	}
}

func (r *TextRequest) Prompt() string {
	return r.prompt
}

func (r *TextRequest) RequestID() GenerationRequestID {
	return r.requestID
}
