package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/harikrishnad1997/FLUX-1-Finetuning/internal/domain/apperrors"
	"github.com/harikrishnad1997/FLUX-1-Finetuning/internal/domain/valueobjects"
)

type GenerationRequestID string

// GenerationRequest は 1 回の「生成」操作の入力です。生成後は変更されません。
type GenerationRequest struct {
	id         GenerationRequestID
	rawPrompt  string
	parameters *valueobjects.GenerationParameters
	createdAt  time.Time
}

func NewGenerationRequest(
	rawPrompt string,
	parameters *valueobjects.GenerationParameters,
) (*GenerationRequest, error) {
	if strings.TrimSpace(rawPrompt) == "" {
		return nil, apperrors.NewUserInputError("prompt", "Please enter a prompt first!")
	}

	if parameters == nil {
		parameters = valueobjects.DefaultGenerationParameters()
	}

	return &GenerationRequest{
		id:         GenerationRequestID(uuid.NewString()),
		rawPrompt:  rawPrompt,
		parameters: parameters,
		createdAt:  time.Now(),
	}, nil
}

func (r *GenerationRequest) ID() GenerationRequestID {
	return r.id
}

func (r *GenerationRequest) RawPrompt() string {
	return r.rawPrompt
}

func (r *GenerationRequest) Parameters() *valueobjects.GenerationParameters {
	return r.parameters
}

func (r *GenerationRequest) CreatedAt() time.Time {
	return r.createdAt
}
