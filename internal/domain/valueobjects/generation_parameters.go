package valueobjects

import (
	"fmt"
	"strings"
)

// ModelVariant は画像生成モデルのプリセットです。
type ModelVariant string

const (
	ModelDev     ModelVariant = "dev"
	ModelSchnell ModelVariant = "schnell"
)

const (
	MinInferenceSteps = 1
	MaxInferenceSteps = 50
	MinGuidanceScale  = 1.0
	MaxGuidanceScale  = 20.0
	MinOutputs        = 1
	MaxOutputs        = 4

	DefaultInferenceSteps = 28
	DefaultGuidanceScale  = 7.5
	DefaultOutputs        = 2
	DefaultModelVariant   = ModelDev
)

func ParseModelVariant(s string) (ModelVariant, error) {
	switch ModelVariant(strings.ToLower(strings.TrimSpace(s))) {
	case ModelDev:
		return ModelDev, nil
	case ModelSchnell:
		return ModelSchnell, nil
	default:
		return "", fmt.Errorf("model variant must be one of dev, schnell, got %q", s)
	}
}

// GenerationParameters は画像生成サービスへそのまま渡す数値パラメータです。
type GenerationParameters struct {
	numInferenceSteps int
	guidanceScale     float64
	modelVariant      ModelVariant
	numOutputs        int
}

func NewGenerationParameters(
	numInferenceSteps int,
	guidanceScale float64,
	modelVariant ModelVariant,
	numOutputs int,
) (*GenerationParameters, error) {
	if numInferenceSteps < MinInferenceSteps || numInferenceSteps > MaxInferenceSteps {
		return nil, fmt.Errorf("numInferenceSteps must be between %d and %d, got %d", MinInferenceSteps, MaxInferenceSteps, numInferenceSteps)
	}

	if guidanceScale < MinGuidanceScale || guidanceScale > MaxGuidanceScale {
		return nil, fmt.Errorf("guidanceScale must be between %.1f and %.1f, got %v", MinGuidanceScale, MaxGuidanceScale, guidanceScale)
	}

	if modelVariant != ModelDev && modelVariant != ModelSchnell {
		return nil, fmt.Errorf("model variant must be one of dev, schnell, got %q", modelVariant)
	}

	if numOutputs < MinOutputs || numOutputs > MaxOutputs {
		return nil, fmt.Errorf("numOutputs must be between %d and %d, got %d", MinOutputs, MaxOutputs, numOutputs)
	}

	return &GenerationParameters{
		numInferenceSteps: numInferenceSteps,
		guidanceScale:     guidanceScale,
		modelVariant:      modelVariant,
		numOutputs:        numOutputs,
	}, nil
}

func DefaultGenerationParameters() *GenerationParameters {
	params, _ := NewGenerationParameters(
		DefaultInferenceSteps,
		DefaultGuidanceScale,
		DefaultModelVariant,
		DefaultOutputs,
	)
	return params
}

func (p *GenerationParameters) NumInferenceSteps() int {
	return p.numInferenceSteps
}

func (p *GenerationParameters) GuidanceScale() float64 {
	return p.guidanceScale
}

func (p *GenerationParameters) ModelVariant() ModelVariant {
	return p.modelVariant
}

func (p *GenerationParameters) NumOutputs() int {
	return p.numOutputs
}
