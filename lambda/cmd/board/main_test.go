package main

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"

	"postboard/internal/board"
	"postboard/internal/model"
	"postboard/internal/web"
)

type stubService struct {
	requested model.PostRequest
}

func (s *stubService) ListPosts(context.Context) ([]model.Post, error) {
	return []model.Post{{ID: 1, Title: "hello", Body: "world", UserID: 1}}, nil
}

func (s *stubService) CreatePost(_ context.Context, in model.PostRequest) (*model.Post, error) {
	s.requested = in
	return &model.Post{ID: 101, Title: in.Title, Body: in.Body, UserID: in.UserID}, nil
}

func (s *stubService) DeletePost(context.Context, int) error { return nil }

func TestToHTTPRequest(t *testing.T) {
	req := events.APIGatewayProxyRequest{
		HTTPMethod:            http.MethodPost,
		Path:                  "/posts",
		Headers:               map[string]string{"content-type": "application/x-www-form-urlencoded"},
		QueryStringParameters: map[string]string{"q": "x"},
		Body:                  base64.StdEncoding.EncodeToString([]byte("title=T&body=B")),
		IsBase64Encoded:       true,
	}
	r, err := toHTTPRequest(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if r.Method != http.MethodPost || r.URL.Path != "/posts" || r.URL.Query().Get("q") != "x" {
		t.Errorf("request = %s %s", r.Method, r.URL)
	}
	if r.Header.Get("Content-Type") != "application/x-www-form-urlencoded" {
		t.Errorf("headers = %v", r.Header)
	}
	body, _ := io.ReadAll(r.Body)
	if string(body) != "title=T&body=B" {
		t.Errorf("body = %q", body)
	}
}

func TestToHTTPRequestBadBody(t *testing.T) {
	_, err := toHTTPRequest(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod:      http.MethodPost,
		Path:            "/posts",
		Body:            "%%%",
		IsBase64Encoded: true,
	})
	if err == nil {
		t.Fatal("expected decode error")
	}
}

func TestHandleRequestCreate(t *testing.T) {
	service := &stubService{}
	a := &app{handler: web.NewHandler(service)}

	resp, err := a.handleRequest(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod:     http.MethodPost,
		Path:           "/posts",
		Headers:        map[string]string{"Content-Type": "application/x-www-form-urlencoded"},
		Body:           "title=T&body=B",
		RequestContext: events.APIGatewayProxyRequestContext{Stage: "prod"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if service.requested != model.NewPostRequest("T", "B") {
		t.Errorf("request = %+v", service.requested)
	}
	if !strings.Contains(resp.Body, board.CreatedMessage) || !strings.Contains(resp.Body, `action="/prod/posts"`) {
		t.Errorf("body:\n%s", resp.Body)
	}
}

type panicHandler struct{}

func (panicHandler) ServeHTTP(http.ResponseWriter, *http.Request) { panic("boom") }

func TestHandleRequestRecovers(t *testing.T) {
	a := &app{handler: panicHandler{}}
	resp, err := a.handleRequest(context.Background(), events.APIGatewayProxyRequest{HTTPMethod: http.MethodGet, Path: "/"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", resp.StatusCode)
	}
}
