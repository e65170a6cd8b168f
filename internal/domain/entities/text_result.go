package entities

import "strings"

// TextResult は書き換え済みプロンプトです。サービスの応答をそのまま保持します。
type TextResult struct {
	text string
}

func NewTextResult(text string) *TextResult {
	return &TextResult{
		text: text,
	}
}

func (r *TextResult) Text() string {
	return r.text
}

func (r *TextResult) WordCount() int {
	return len(strings.Fields(r.text))
}

// Mentions は name が大文字小文字を区別せずに含まれているかを返します。
func (r *TextResult) Mentions(name string) bool {
	return strings.Contains(strings.ToLower(r.text), strings.ToLower(name))
}
