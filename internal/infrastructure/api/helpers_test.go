package api

import (
	"bytes"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/require"
)

// multipartWriter はフィールドを書き込み、Content-Type ヘッダ値を返します。
func multipartWriter(t *testing.T, buf *bytes.Buffer, fields map[string]string) string {
	t.Helper()
	w := multipart.NewWriter(buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return w.FormDataContentType()
}
