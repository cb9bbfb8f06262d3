package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"postboard/internal/config"
	"postboard/internal/response"
	"postboard/internal/web"
	"postboard/pkg/logger"
)

// API Gatewayのイベントを http.Request に変換
func toHTTPRequest(ctx context.Context, req events.APIGatewayProxyRequest) (*http.Request, error) {
	body := req.Body
	if req.IsBase64Encoded {
		b, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to decode body: %w", err)
		}
		body = string(b)
	}

	u := url.URL{Path: req.Path}
	query := url.Values{}
	for k, vs := range req.MultiValueQueryStringParameters {
		query[k] = vs
	}
	for k, v := range req.QueryStringParameters {
		if _, ok := query[k]; !ok {
			query.Set(k, v)
		}
	}
	u.RawQuery = query.Encode()

	base := "/"
	if stage := req.RequestContext.Stage; stage != "" {
		base = "/" + stage + "/"
	}

	r, err := http.NewRequestWithContext(web.WithBase(ctx, base), req.HTTPMethod, u.String(), strings.NewReader(body))
	if err != nil {
		return nil, err
	}
	for k, v := range req.Headers {
		r.Header.Set(k, v)
	}
	for k, vs := range req.MultiValueHeaders {
		r.Header[http.CanonicalHeaderKey(k)] = vs
	}
	return r, nil
}

type app struct {
	handler http.Handler
}

func (a *app) handleRequest(ctx context.Context, req events.APIGatewayProxyRequest) (resp events.APIGatewayProxyResponse, err error) {
	defer func() {
		if p := recover(); p != nil {
			logger.Error("panic while handling request", "path", req.Path, "panic", p)
			resp, err = response.InternalServerError("internal error"), nil
		}
	}()

	r, err := toHTTPRequest(ctx, req)
	if err != nil {
		logger.Error("failed to convert request", "path", req.Path, "error", err)
		return response.BadRequest("invalid request"), nil
	}

	w := response.NewWriter()
	a.handler.ServeHTTP(w, r)
	return w.Result(), nil
}

func main() {
	_ = os.Setenv("AWS_SDK_LOAD_CONFIG", "1")

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger.Init(os.Stdout, logger.ParseLevel(cfg.LogLevel))

	service, err := cfg.PostService(context.Background())
	if err != nil {
		logger.Error("failed to create post service", "error", err)
		os.Exit(1)
	}

	a := &app{handler: web.NewHandler(service)}
	lambda.Start(a.handleRequest)
}
