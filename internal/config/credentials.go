package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/harikrishnad1997/FLUX-1-Finetuning/internal/domain/apperrors"
)

const (
	GeminiAPIKeyName      = "GEMINI_API_KEY"
	ReplicateAPITokenName = "REPLICATE_API_TOKEN"
)

type Credentials struct {
	GeminiAPIKey      string
	ReplicateAPIToken string
}

// ResolveCredentials はシークレットファイル、環境変数の順に認証情報を探します。
// 空の値は未設定として扱い、どちらかが見つからなければ ConfigurationError を返します。
func ResolveCredentials(secretsFile string) (*Credentials, error) {
	secrets := readSecrets(secretsFile)

	var missing []string
	lookup := func(name string) string {
		if v := strings.TrimSpace(secrets[name]); v != "" {
			return v
		}
		if v, ok := os.LookupEnv(name); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		missing = append(missing, name)
		return ""
	}

	creds := &Credentials{
		GeminiAPIKey:      lookup(GeminiAPIKeyName),
		ReplicateAPIToken: lookup(ReplicateAPITokenName),
	}

	if len(missing) > 0 {
		return nil, &apperrors.ConfigurationError{Missing: missing}
	}

	return creds, nil
}

// readSecrets はシークレットファイルを読みます。読めない場合は空として扱います。
func readSecrets(path string) map[string]string {
	if path == "" {
		return map[string]string{}
	}

	secrets, err := godotenv.Read(path)
	if err != nil {
		slog.Debug("secret store unavailable", "path", path, "error", err)
		return map[string]string{}
	}

	return secrets
}
