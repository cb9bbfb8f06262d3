package postapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"postboard/internal/metrics"
	"postboard/internal/model"
	"postboard/pkg/logger"
)

// 既定の投稿APIのベースURL
const DefaultEndpoint = "https://jsonplaceholder.typicode.com"

// HTTPトランスポート (*http.Client が満たす)
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// 投稿REST APIのクライアント
type Client struct {
	endpoint string
	http     Doer
}

// クライアントのコンストラクタ (doer が nil なら http.DefaultClient)
func NewClient(endpoint string, doer Doer) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if doer == nil {
		doer = http.DefaultClient
	}
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		http:     doer,
	}
}

func (c *Client) postsURL() string {
	return c.endpoint + "/posts"
}

// リクエストを送り、成功以外のステータスをエラーにする
func (c *Client) do(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.ObserveRequestDuration(req.Method, time.Since(start).Seconds())
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &StatusError{Method: req.Method, URL: req.URL.String(), StatusCode: resp.StatusCode}
	}
	return resp, nil
}

func decode(resp *http.Response, v any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Err: err}
	}
	// null はエラーなしでデコードされてしまうため弾く
	if bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		return &ParseError{Err: errors.New("response body is null")}
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &ParseError{Err: err}
	}
	return nil
}

// 投稿一覧を取得 (サーバーの順序のまま)
func (c *Client) ListPosts(ctx context.Context) ([]model.Post, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.postsURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	var posts []model.Post
	if err := decode(resp, &posts); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	logger.Debug("fetched posts", "count", len(posts))
	return posts, nil
}

// 投稿を作成し、採番済みの投稿を返す
func (c *Client) CreatePost(ctx context.Context, in model.PostRequest) (*model.Post, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal post: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.postsURL(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	var post model.Post
	if err := decode(resp, &post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	logger.Debug("created post", "id", post.ID)
	return &post, nil
}

// 指定IDの投稿を削除
func (c *Client) DeletePost(ctx context.Context, id int) error {
	url := c.postsURL() + "/" + strconv.Itoa(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	logger.Debug("deleted post", "id", id)
	return nil
}
