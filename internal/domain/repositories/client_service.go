package repositories

import (
	"context"

	"github.com/replicate/replicate-go"
	"google.golang.org/genai"
)

// AIクライアント共通設定
type AIClientConfig struct {
	GeminiAPIKey      string
	ReplicateAPIToken string
}

// GenAI Client Pool Service
// プロンプト書き換えで使用する Gemini クライアント
type GenAIClientPool interface {
	GetGenAIClient(ctx context.Context) (*genai.Client, error)

	// リソースのクリーンアップ
	Close() error
}

// Replicate Client Pool Service
// 画像生成で使用する Replicate クライアント
type ReplicateClientPool interface {
	GetReplicateClient(ctx context.Context) (*replicate.Client, error)

	// リソースのクリーンアップ
	Close() error
}

// Client Pool Service
// 起動時に一度だけ作成し、以降は読み取り専用で共有する
type ClientPoolService interface {
	GenAIPool() GenAIClientPool

	ReplicatePool() ReplicateClientPool

	// 設定情報を取得
	Config() *AIClientConfig

	// 全リソースのクリーンアップ
	Close() error
}
