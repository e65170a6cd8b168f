package repositories

import (
	"context"

	"github.com/harikrishnad1997/FLUX-1-Finetuning/internal/domain/entities"
	"github.com/harikrishnad1997/FLUX-1-Finetuning/internal/domain/valueobjects"
)

// プロンプト書き換え（テキスト生成）サービス
type TextAIService interface {
	// RewritePrompt は毎回空の履歴から始まるセッションでプロンプトを書き換えます。
	RewritePrompt(ctx context.Context, request *entities.TextRequest) (*entities.TextResult, error)
}

// 画像生成サービス
type ImageGenerationService interface {
	// GenerateImages は生成された画像の URL をサービスが返した順に返します。
	GenerateImages(ctx context.Context, prompt string, params *valueobjects.GenerationParameters) ([]string, error)
}

// 生成画像の取得
type ImageFetcher interface {
	FetchImage(ctx context.Context, url string) (*valueobjects.ImageData, error)
}
