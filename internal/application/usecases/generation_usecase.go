package usecases

import (
	"context"
	"fmt"

	"github.com/harikrishnad1997/FLUX-1-Finetuning/internal/domain/apperrors"
	"github.com/harikrishnad1997/FLUX-1-Finetuning/internal/domain/entities"
	"github.com/harikrishnad1997/FLUX-1-Finetuning/internal/domain/services"
	"github.com/harikrishnad1997/FLUX-1-Finetuning/internal/domain/valueobjects"
)

type GenerationUseCase struct {
	domainService *services.GenerationDomainService
}

func NewGenerationUseCase(
	domainService *services.GenerationDomainService,
) *GenerationUseCase {
	return &GenerationUseCase{
		domainService: domainService,
	}
}

type GenerationInput struct {
	Prompt            string
	NumInferenceSteps int
	GuidanceScale     float64
	ModelVariant      string
	NumOutputs        int
}

type GenerationOutput struct {
	RequestID   string
	FinalPrompt string
	Images      []ImageOutput
}

type ImageOutput struct {
	Index  int
	URL    string
	Data   []byte
	Type   string
	Width  int
	Height int
	Error  string
}

// Execute は入力を検証してパイプラインを実行します。
// 画像生成段階で失敗した場合は、最終プロンプトだけを持つ出力とエラーを返します。
func (uc *GenerationUseCase) Execute(ctx context.Context, input GenerationInput) (*GenerationOutput, error) {
	variant, err := valueobjects.ParseModelVariant(input.ModelVariant)
	if err != nil {
		return nil, apperrors.NewUserInputError("model", err.Error())
	}

	params, err := valueobjects.NewGenerationParameters(
		input.NumInferenceSteps,
		input.GuidanceScale,
		variant,
		input.NumOutputs,
	)
	if err != nil {
		return nil, apperrors.NewUserInputError("parameters", err.Error())
	}

	request, err := entities.NewGenerationRequest(input.Prompt, params)
	if err != nil {
		return nil, err
	}

	result, err := uc.domainService.ProcessGeneration(ctx, request)
	if result == nil {
		return nil, err
	}

	output := toOutput(result)
	if err != nil {
		return output, fmt.Errorf("generation %s: %w", request.ID(), err)
	}
	return output, nil
}

func toOutput(result *entities.ImageResult) *GenerationOutput {
	output := &GenerationOutput{
		RequestID:   string(result.RequestID()),
		FinalPrompt: result.FinalPrompt(),
		Images:      make([]ImageOutput, len(result.Entries())),
	}

	for i, entry := range result.Entries() {
		img := ImageOutput{
			Index: entry.Index(),
			URL:   entry.URL(),
		}
		if entry.OK() {
			img.Data = entry.Image().Data()
			img.Type = entry.Image().MimeType()
			img.Width = entry.Image().Width()
			img.Height = entry.Image().Height()
		} else if entry.Err() != nil {
			img.Error = entry.Err().Error()
		}
		output.Images[i] = img
	}

	return output
}
