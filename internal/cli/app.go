package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	appservices "github.com/harikrishnad1997/FLUX-1-Finetuning/internal/application/services"
	"github.com/harikrishnad1997/FLUX-1-Finetuning/internal/application/usecases"
	"github.com/harikrishnad1997/FLUX-1-Finetuning/internal/config"
	domainservices "github.com/harikrishnad1997/FLUX-1-Finetuning/internal/domain/services"
	"github.com/harikrishnad1997/FLUX-1-Finetuning/internal/infrastructure/api"
	"github.com/harikrishnad1997/FLUX-1-Finetuning/internal/infrastructure/external"
	infraservices "github.com/harikrishnad1997/FLUX-1-Finetuning/internal/infrastructure/services"
)

// application はコマンド間で共有する設定と依存関係の組み立てを保持します。
type application struct {
	cfg   *config.Config
	creds *config.Credentials

	buildUseCase func(ctx context.Context) (*usecases.GenerationUseCase, func() error, error)
	listen       func(ctx context.Context, addr string, handler http.Handler) error
}

func newApplication() *application {
	app := &application{
		cfg:    config.LoadConfig(),
		listen: listenAndServe,
	}
	app.buildUseCase = app.wireUseCase
	return app
}

// wireUseCase は SDK クライアントを一度だけ作成し、各層を組み立てます。
func (a *application) wireUseCase(ctx context.Context) (*usecases.GenerationUseCase, func() error, error) {
	if a.creds == nil {
		return nil, nil, errors.New("credentials have not been resolved")
	}

	// インフラ層を初期化
	pool := infraservices.NewClientPoolService(a.creds.GeminiAPIKey, a.creds.ReplicateAPIToken)

	genAIClient, err := pool.GenAIPool().GetGenAIClient(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	replicateClient, err := pool.ReplicatePool().GetReplicateClient(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Replicate client: %w", err)
	}

	textService := external.NewGeminiAIService(genAIClient, a.cfg.GeminiModel)
	imageService := external.NewReplicateAIService(replicateClient, a.cfg.ReplicateModel)
	fetcher := external.NewHTTPImageFetcher(a.cfg.FetchTimeout)

	// ドメイン層を初期化
	domainService := domainservices.NewGenerationDomainService(textService, imageService, fetcher)

	// アプリケーション層を初期化
	return usecases.NewGenerationUseCase(domainService), pool.Close, nil
}

func (a *application) newRouter(useCase *usecases.GenerationUseCase) http.Handler {
	handler := api.NewGenerationHandler(useCase, appservices.NewParameterService())
	return api.NewRouter(handler)
}

// listenAndServe は ctx がキャンセルされるとサーバーを停止します。
func listenAndServe(ctx context.Context, addr string, handler http.Handler) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}
