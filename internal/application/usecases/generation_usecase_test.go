package usecases

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harikrishnad1997/FLUX-1-Finetuning/internal/domain/apperrors"
	"github.com/harikrishnad1997/FLUX-1-Finetuning/internal/domain/entities"
	"github.com/harikrishnad1997/FLUX-1-Finetuning/internal/domain/services"
	"github.com/harikrishnad1997/FLUX-1-Finetuning/internal/domain/valueobjects"
)

type fakeText struct {
	calls int
	err   error
}

func (f *fakeText) RewritePrompt(ctx context.Context, request *entities.TextRequest) (*entities.TextResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return entities.NewTextResult("Hari " + request.Prompt()), nil
}

type fakeImages struct {
	calls int
	urls  []string
	err   error
}

func (f *fakeImages) GenerateImages(ctx context.Context, prompt string, params *valueobjects.GenerationParameters) ([]string, error) {
	f.calls++
	return f.urls, f.err
}

type fakeFetcher struct {
	data []byte
	bad  string
}

func (f *fakeFetcher) FetchImage(ctx context.Context, url string) (*valueobjects.ImageData, error) {
	if url == f.bad {
		return nil, &apperrors.AssetFetchError{URL: url, StatusCode: 500}
	}
	return valueobjects.NewImageData(f.data)
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 6, 3))))
	return buf.Bytes()
}

func validInput() GenerationInput {
	return GenerationInput{
		Prompt:            "Winning the Italian GP as a Ferrari Driver",
		NumInferenceSteps: 28,
		GuidanceScale:     7.5,
		ModelVariant:      "dev",
		NumOutputs:        2,
	}
}

func TestGenerationUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("maps entries to outputs in order", func(t *testing.T) {
		images := &fakeImages{urls: []string{"https://cdn.example.com/a.png", "https://cdn.example.com/b.png"}}
		fetcher := &fakeFetcher{data: pngBytes(t), bad: "https://cdn.example.com/b.png"}
		uc := NewGenerationUseCase(services.NewGenerationDomainService(&fakeText{}, images, fetcher))

		out, err := uc.Execute(ctx, validInput())

		require.NoError(t, err)
		assert.NotEmpty(t, out.RequestID)
		assert.Equal(t, "Hari Winning the Italian GP as a Ferrari Driver", out.FinalPrompt)
		require.Len(t, out.Images, 2)

		assert.Equal(t, 0, out.Images[0].Index)
		assert.Equal(t, "image/png", out.Images[0].Type)
		assert.Equal(t, 6, out.Images[0].Width)
		assert.Equal(t, 3, out.Images[0].Height)
		assert.Empty(t, out.Images[0].Error)

		assert.Equal(t, "https://cdn.example.com/b.png", out.Images[1].URL)
		assert.Nil(t, out.Images[1].Data)
		assert.Contains(t, out.Images[1].Error, "status 500")
	})

	t.Run("empty prompt short-circuits before any network call", func(t *testing.T) {
		text := &fakeText{}
		images := &fakeImages{}
		uc := NewGenerationUseCase(services.NewGenerationDomainService(text, images, &fakeFetcher{}))

		input := validInput()
		input.Prompt = "   "
		out, err := uc.Execute(ctx, input)

		require.Error(t, err)
		assert.Nil(t, out)
		assert.True(t, apperrors.IsUserInputError(err))
		assert.Equal(t, 0, text.calls)
		assert.Equal(t, 0, images.calls)
	})

	t.Run("out of range parameters are user input errors", func(t *testing.T) {
		text := &fakeText{}
		uc := NewGenerationUseCase(services.NewGenerationDomainService(text, &fakeImages{}, &fakeFetcher{}))

		input := validInput()
		input.NumOutputs = 5
		_, err := uc.Execute(ctx, input)

		assert.True(t, apperrors.IsUserInputError(err))
		assert.Equal(t, 0, text.calls)
	})

	t.Run("unknown model variant", func(t *testing.T) {
		uc := NewGenerationUseCase(services.NewGenerationDomainService(&fakeText{}, &fakeImages{}, &fakeFetcher{}))

		input := validInput()
		input.ModelVariant = "ultra"
		_, err := uc.Execute(ctx, input)

		assert.True(t, apperrors.IsUserInputError(err))
	})

	t.Run("generate failure returns the final prompt with the error", func(t *testing.T) {
		images := &fakeImages{err: errors.New("prediction failed")}
		uc := NewGenerationUseCase(services.NewGenerationDomainService(&fakeText{}, images, &fakeFetcher{}))

		out, err := uc.Execute(ctx, validInput())

		require.Error(t, err)
		assert.True(t, apperrors.IsUpstreamServiceError(err))
		require.NotNil(t, out)
		assert.Equal(t, "Hari Winning the Italian GP as a Ferrari Driver", out.FinalPrompt)
		assert.Empty(t, out.Images)
	})

	t.Run("rewrite failure returns no output", func(t *testing.T) {
		images := &fakeImages{}
		uc := NewGenerationUseCase(services.NewGenerationDomainService(&fakeText{err: errors.New("PERMISSION_DENIED")}, images, &fakeFetcher{}))

		out, err := uc.Execute(ctx, validInput())

		require.Error(t, err)
		assert.Nil(t, out)
		assert.Equal(t, 0, images.calls)
	})
}
