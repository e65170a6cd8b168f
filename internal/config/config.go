package config

import (
	"log/slog"
	"time"

	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義
const (
	DefaultPort           = "8080"
	DefaultGeminiModel    = "gemini-1.5-flash-8b"
	DefaultReplicateModel = "harikrishnad1997/flux-1-hari-ft:37b22168a51d814b49bc8629cca6caaa6789a8a7b65cdd5123310fe5a5c5fecc"
	DefaultSecretsFile    = ".secrets/secrets.env"
	DefaultPrompt         = "Winning the Italian GP as a Ferrari Driver"
)

// Config は秘密情報以外の設定を保持します。認証情報は ResolveCredentials で別に解決します。
type Config struct {
	Port           string
	GeminiModel    string
	ReplicateModel string
	SecretsFile    string

	// 0 はタイムアウトなし
	FetchTimeout time.Duration
}

// LoadConfig は環境変数から設定を読み込みます。
func LoadConfig() *Config {
	cfg := &Config{
		Port:           envutil.GetEnv("PORT", DefaultPort),
		GeminiModel:    envutil.GetEnv("GEMINI_MODEL", DefaultGeminiModel),
		ReplicateModel: envutil.GetEnv("REPLICATE_MODEL", DefaultReplicateModel),
		SecretsFile:    envutil.GetEnv("SECRETS_FILE", DefaultSecretsFile),
	}

	raw := envutil.GetEnv("FETCH_TIMEOUT", "0")
	timeout, err := time.ParseDuration(raw)
	if err != nil || timeout < 0 {
		slog.Warn("invalid FETCH_TIMEOUT, falling back to no timeout", "value", raw)
		timeout = 0
	}
	cfg.FetchTimeout = timeout

	return cfg
}

// Addr は待ち受けアドレスを返します。
func (c *Config) Addr() string {
	return ":" + c.Port
}
