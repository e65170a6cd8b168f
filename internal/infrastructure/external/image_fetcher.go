package external

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/harikrishnad1997/FLUX-1-Finetuning/internal/domain/apperrors"
	"github.com/harikrishnad1997/FLUX-1-Finetuning/internal/domain/repositories"
	"github.com/harikrishnad1997/FLUX-1-Finetuning/internal/domain/valueobjects"
)

type HTTPImageFetcher struct {
	httpClient *http.Client
}

// NewHTTPImageFetcher は timeout が 0 の場合タイムアウトなしのクライアントを使います。
func NewHTTPImageFetcher(timeout time.Duration) repositories.ImageFetcher {
	return &HTTPImageFetcher{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchImage は 1 回だけ GET し、本文をデコードします。リトライはしません。
func (f *HTTPImageFetcher) FetchImage(ctx context.Context, rawURL string) (*valueobjects.ImageData, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, &apperrors.AssetFetchError{URL: rawURL, Err: fmt.Errorf("unsupported image URL")}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &apperrors.AssetFetchError{URL: rawURL, Err: err}
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, &apperrors.AssetFetchError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &apperrors.AssetFetchError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	imageData, err := valueobjects.DecodeImageData(resp.Body)
	if err != nil {
		return nil, &apperrors.AssetFetchError{URL: rawURL, Err: err}
	}

	return imageData, nil
}
