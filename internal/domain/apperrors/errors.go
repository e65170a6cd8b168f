// Package apperrors は、画像生成パイプラインで発生するエラーの分類を定義します。
//
// ConfigurationError だけが起動を止めるエラーで、それ以外は利用者への
// メッセージとして表示され、パイプラインはその段階で停止します。
package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// パイプラインの段階名
const (
	StageRewrite  = "rewrite"
	StageGenerate = "generate"
)

// ConfigurationError は必須の認証情報が見つからない場合のエラーです。
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: missing credential(s): %s", strings.Join(e.Missing, ", "))
}

// UpstreamServiceError はプロンプト書き換え、または画像生成の API 呼び出しの失敗です。
type UpstreamServiceError struct {
	Stage string
	Err   error
}

func NewUpstreamServiceError(stage string, err error) *UpstreamServiceError {
	return &UpstreamServiceError{Stage: stage, Err: err}
}

func (e *UpstreamServiceError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *UpstreamServiceError) Unwrap() error {
	return e.Err
}

// AssetFetchError は個々の画像のダウンロード・デコードの失敗です。
// 他の画像の取得には影響しません。
type AssetFetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *AssetFetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to fetch image %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("failed to fetch image %s: %v", e.URL, e.Err)
}

func (e *AssetFetchError) Unwrap() error {
	return e.Err
}

// UserInputError はネットワーク呼び出し前に検出される入力エラーです。
type UserInputError struct {
	Field   string
	Message string
}

func NewUserInputError(field, message string) *UserInputError {
	return &UserInputError{Field: field, Message: message}
}

func (e *UserInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func IsUserInputError(err error) bool {
	var target *UserInputError
	return errors.As(err, &target)
}

func IsUpstreamServiceError(err error) bool {
	var target *UpstreamServiceError
	return errors.As(err, &target)
}

func IsConfigurationError(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

// IsQuotaError はクォータ超過・レート制限によるエラーかどうかを判定します。
func IsQuotaError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "quota exceeded") ||
		strings.Contains(errStr, "resourceexhausted") ||
		strings.Contains(errStr, "resource_exhausted") ||
		strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "status 429") ||
		strings.Contains(errStr, "error 429")
}
