package services

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/harikrishnad1997/FLUX-1-Finetuning/internal/application/usecases"
	"github.com/harikrishnad1997/FLUX-1-Finetuning/internal/domain/valueobjects"
)

type ParameterService struct{}

func NewParameterService() *ParameterService {
	return &ParameterService{}
}

// ParseFromRequest はフォーム値を読み取ります。
// 範囲外や数値でない値は既定値に置き換えます。prompt だけは既定値を持ちません。
func (s *ParameterService) ParseFromRequest(r *http.Request) *usecases.GenerationInput {
	input := &usecases.GenerationInput{
		Prompt: strings.TrimSpace(r.FormValue("prompt")),
		NumInferenceSteps: s.getInt(r, "num_inference_steps", valueobjects.DefaultInferenceSteps,
			valueobjects.MinInferenceSteps, valueobjects.MaxInferenceSteps),
		GuidanceScale: s.getFloat(r, "guidance_scale", valueobjects.DefaultGuidanceScale,
			valueobjects.MinGuidanceScale, valueobjects.MaxGuidanceScale),
		ModelVariant: s.getString(r, "model", string(valueobjects.DefaultModelVariant)),
		NumOutputs: s.getInt(r, "num_outputs", valueobjects.DefaultOutputs,
			valueobjects.MinOutputs, valueobjects.MaxOutputs),
	}

	// 不明なバリアントは dev 扱い
	if _, err := valueobjects.ParseModelVariant(input.ModelVariant); err != nil {
		input.ModelVariant = string(valueobjects.DefaultModelVariant)
	}

	return input
}

func (s *ParameterService) getInt(r *http.Request, key string, defaultValue, min, max int) int {
	value := strings.TrimSpace(r.FormValue(key))
	if value == "" {
		return defaultValue
	}

	intVal, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if intVal < min || intVal > max {
		return defaultValue
	}

	return intVal
}

func (s *ParameterService) getFloat(r *http.Request, key string, defaultValue, min, max float64) float64 {
	value := strings.TrimSpace(r.FormValue(key))
	if value == "" {
		return defaultValue
	}

	floatVal, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}

	if floatVal < min || floatVal > max {
		return defaultValue
	}

	return floatVal
}

func (s *ParameterService) getString(r *http.Request, key, defaultValue string) string {
	value := strings.TrimSpace(r.FormValue(key))
	if value == "" {
		return defaultValue
	}
	return value
}
