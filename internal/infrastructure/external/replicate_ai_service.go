package external

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/replicate/replicate-go"

	"github.com/harikrishnad1997/FLUX-1-Finetuning/internal/domain/repositories"
	"github.com/harikrishnad1997/FLUX-1-Finetuning/internal/domain/valueobjects"
)

type predictionRunner interface {
	Run(ctx context.Context, model string, input replicate.PredictionInput) (replicate.PredictionOutput, error)
}

// clientRunner は replicate.Client.Run を webhook なしで呼び出します。
type clientRunner struct {
	client *replicate.Client
}

func (r clientRunner) Run(ctx context.Context, model string, input replicate.PredictionInput) (replicate.PredictionOutput, error) {
	return r.client.Run(ctx, model, input, nil)
}

type ReplicateAIService struct {
	runner predictionRunner
	model  string
}

func NewReplicateAIService(client *replicate.Client, model string) repositories.ImageGenerationService {
	return &ReplicateAIService{
		runner: clientRunner{client: client},
		model:  model,
	}
}

// GenerateImages はパラメータを変換せずにモデルへ渡し、出力の URL 一覧を返します。
func (s *ReplicateAIService) GenerateImages(
	ctx context.Context,
	prompt string,
	params *valueobjects.GenerationParameters,
) ([]string, error) {
	if params == nil {
		return nil, fmt.Errorf("generation parameters are required")
	}

	input := replicate.PredictionInput{
		"prompt":              prompt,
		"num_inference_steps": params.NumInferenceSteps(),
		"guidance_scale":      params.GuidanceScale(),
		"model":               string(params.ModelVariant()),
		"num_outputs":         params.NumOutputs(),
	}

	slog.Info("GenerateImages", "model", s.model, "steps", params.NumInferenceSteps(),
		"guidance", params.GuidanceScale(), "variant", params.ModelVariant(), "outputs", params.NumOutputs())

	output, err := s.runner.Run(ctx, s.model, input)
	if err != nil {
		return nil, fmt.Errorf("failed to run prediction: %w", err)
	}

	urls, err := normalizeOutput(output)
	if err != nil {
		return nil, err
	}

	slog.Info("GenerateImages", "returned", len(urls))
	return urls, nil
}

// normalizeOutput は予測結果を URL のリストにそろえます。
func normalizeOutput(output replicate.PredictionOutput) ([]string, error) {
	switch v := output.(type) {
	case nil:
		return []string{}, nil
	case string:
		return []string{v}, nil
	case []string:
		return v, nil
	case []any:
		urls := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected output item %d of type %T", i, item)
			}
			urls = append(urls, s)
		}
		return urls, nil
	default:
		return nil, fmt.Errorf("unexpected prediction output type %T", output)
	}
}
