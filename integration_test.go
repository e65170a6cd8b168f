package main

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/jpeg"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appservices "github.com/harikrishnad1997/FLUX-1-Finetuning/internal/application/services"
	"github.com/harikrishnad1997/FLUX-1-Finetuning/internal/application/usecases"
	"github.com/harikrishnad1997/FLUX-1-Finetuning/internal/domain/entities"
	domainservices "github.com/harikrishnad1997/FLUX-1-Finetuning/internal/domain/services"
	"github.com/harikrishnad1997/FLUX-1-Finetuning/internal/domain/valueobjects"
	"github.com/harikrishnad1997/FLUX-1-Finetuning/internal/infrastructure/api"
	"github.com/harikrishnad1997/FLUX-1-Finetuning/internal/infrastructure/external"
	"github.com/harikrishnad1997/FLUX-1-Finetuning/model"
)

type scriptedRewriter struct {
	prompts []string
}

func (s *scriptedRewriter) RewritePrompt(ctx context.Context, request *entities.TextRequest) (*entities.TextResult, error) {
	s.prompts = append(s.prompts, request.Prompt())
	return entities.NewTextResult("Hari, wearing a red Ferrari race suit, stands on the top step of the Monza podium holding the Italian GP trophy as the tifosi cheer below."), nil
}

type scriptedGenerator struct {
	urls       []string
	lastPrompt string
	lastParams *valueobjects.GenerationParameters
}

func (s *scriptedGenerator) GenerateImages(ctx context.Context, prompt string, params *valueobjects.GenerationParameters) ([]string, error) {
	s.lastPrompt = prompt
	s.lastParams = params
	return s.urls, nil
}

func TestItalianGPScenario(t *testing.T) {
	var jpegData bytes.Buffer
	require.NoError(t, jpeg.Encode(&jpegData, image.NewRGBA(image.Rect(0, 0, 16, 9)), nil))

	var mu sync.Mutex
	var fetched []string
	cdn := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		fetched = append(fetched, r.URL.Path)
		mu.Unlock()
		if r.URL.Path == "/out-1.jpg" {
			http.Error(w, "gone", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write(jpegData.Bytes())
	}))
	defer cdn.Close()

	rewriter := &scriptedRewriter{}
	generator := &scriptedGenerator{urls: []string{cdn.URL + "/out-0.jpg", cdn.URL + "/out-1.jpg"}}
	domain := domainservices.NewGenerationDomainService(rewriter, generator, external.NewHTTPImageFetcher(0))
	handler := api.NewGenerationHandler(usecases.NewGenerationUseCase(domain), appservices.NewParameterService())
	router := api.NewRouter(handler)

	form := url.Values{
		"prompt":              {"Winning the Italian GP as a Ferrari Driver"},
		"num_inference_steps": {"28"},
		"guidance_scale":      {"7.5"},
		"model":               {"dev"},
		"num_outputs":         {"2"},
	}
	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body model.GenerateResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))

	// 書き換え
	assert.Equal(t, []string{"Winning the Italian GP as a Ferrari Driver"}, rewriter.prompts)
	assert.Contains(t, body.FinalPrompt, domainservices.CharacterName)
	assert.LessOrEqual(t, len(strings.Fields(body.FinalPrompt)), 50)

	// 生成
	assert.Equal(t, body.FinalPrompt, generator.lastPrompt)
	assert.Equal(t, 28, generator.lastParams.NumInferenceSteps())
	assert.Equal(t, 7.5, generator.lastParams.GuidanceScale())
	assert.Equal(t, valueobjects.ModelDev, generator.lastParams.ModelVariant())
	assert.Equal(t, 2, generator.lastParams.NumOutputs())

	// 取得
	mu.Lock()
	assert.Equal(t, []string{"/out-0.jpg", "/out-1.jpg"}, fetched, "exactly two URLs, in order")
	mu.Unlock()
	require.Len(t, body.Images, 2)
	assert.True(t, body.Images[0].OK())
	assert.Equal(t, "image/jpeg", body.Images[0].Type)
	assert.Equal(t, 16, body.Images[0].Width)
	assert.Equal(t, cdn.URL+"/out-0.jpg", body.Images[0].URL)
	assert.Contains(t, body.Images[1].Error, "status 500")
	assert.Equal(t, "1 of 2 images could not be loaded.", body.Message)
}
