package services

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newFormRequest(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestParameterService_ParseFromRequest(t *testing.T) {
	svc := NewParameterService()

	t.Run("empty form uses defaults", func(t *testing.T) {
		input := svc.ParseFromRequest(newFormRequest(url.Values{}))

		assert.Equal(t, "", input.Prompt)
		assert.Equal(t, 28, input.NumInferenceSteps)
		assert.Equal(t, 7.5, input.GuidanceScale)
		assert.Equal(t, "dev", input.ModelVariant)
		assert.Equal(t, 2, input.NumOutputs)
	})

	t.Run("valid values pass through", func(t *testing.T) {
		input := svc.ParseFromRequest(newFormRequest(url.Values{
			"prompt":              {"  Winning the Italian GP as a Ferrari Driver  "},
			"num_inference_steps": {"4"},
			"guidance_scale":      {"3.5"},
			"model":               {"schnell"},
			"num_outputs":         {"4"},
		}))

		assert.Equal(t, "Winning the Italian GP as a Ferrari Driver", input.Prompt)
		assert.Equal(t, 4, input.NumInferenceSteps)
		assert.Equal(t, 3.5, input.GuidanceScale)
		assert.Equal(t, "schnell", input.ModelVariant)
		assert.Equal(t, 4, input.NumOutputs)
	})

	tests := []struct {
		name  string
		key   string
		value string
		check func(t *testing.T, steps int, guidance float64, variant string, outputs int)
	}{
		{"steps above range", "num_inference_steps", "51", func(t *testing.T, steps int, _ float64, _ string, _ int) {
			assert.Equal(t, 28, steps)
		}},
		{"steps not a number", "num_inference_steps", "many", func(t *testing.T, steps int, _ float64, _ string, _ int) {
			assert.Equal(t, 28, steps)
		}},
		{"guidance below range", "guidance_scale", "0.5", func(t *testing.T, _ int, guidance float64, _ string, _ int) {
			assert.Equal(t, 7.5, guidance)
		}},
		{"outputs zero", "num_outputs", "0", func(t *testing.T, _ int, _ float64, _ string, outputs int) {
			assert.Equal(t, 2, outputs)
		}},
		{"unknown variant", "model", "pro", func(t *testing.T, _ int, _ float64, variant string, _ int) {
			assert.Equal(t, "dev", variant)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := svc.ParseFromRequest(newFormRequest(url.Values{tt.key: {tt.value}}))
			tt.check(t, input.NumInferenceSteps, input.GuidanceScale, input.ModelVariant, input.NumOutputs)
		})
	}
}
