package response

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

// API Gatewayレスポンスを組み立てる http.ResponseWriter
type Writer struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func NewWriter() *Writer {
	return &Writer{header: http.Header{}}
}

func (w *Writer) Header() http.Header {
	return w.header
}

func (w *Writer) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
}

func (w *Writer) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.body.Write(b)
}

// 書き込まれた内容をプロキシレスポンスに変換
func (w *Writer) Result() events.APIGatewayProxyResponse {
	status := w.status
	if status == 0 {
		status = http.StatusOK
	}
	headers := make(map[string]string, len(w.header))
	multi := make(map[string][]string)
	for k, v := range w.header {
		headers[k] = strings.Join(v, ", ")
		if len(v) > 1 {
			multi[k] = v
		}
	}
	resp := events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    headers,
		Body:       w.body.String(),
	}
	if len(multi) > 0 {
		resp.MultiValueHeaders = multi
	}
	return resp
}

// エラーレスポンス
func errorResponse(code int, message string) events.APIGatewayProxyResponse {
	body, err := json.Marshal(map[string]string{
		"error": message,
	})
	if err != nil {
		return events.APIGatewayProxyResponse{
			StatusCode: code,
			Body:       `{"error":"failed to marshal error response"}`,
			Headers: map[string]string{
				"Content-Type": "application/json",
			},
		}
	}
	return events.APIGatewayProxyResponse{
		StatusCode: code,
		Body:       string(body),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}
}

// バッドリクエストエラー
func BadRequest(message string) events.APIGatewayProxyResponse {
	return errorResponse(http.StatusBadRequest, message)
}

// 内部サーバーエラー
func InternalServerError(message string) events.APIGatewayProxyResponse {
	return errorResponse(http.StatusInternalServerError, message)
}
