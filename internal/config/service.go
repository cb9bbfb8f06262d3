package config

import (
	"context"
	"net/http"

	"postboard/internal/board"
	"postboard/internal/postapi"
	"postboard/internal/repository"
)

// 設定に応じた投稿サービスを生成
func (c Config) PostService(ctx context.Context) (board.PostService, error) {
	if c.Backend == BackendS3 {
		repo, err := repository.NewS3Repository(ctx, c.Bucket)
		if err != nil {
			return nil, err
		}
		return repo, nil
	}
	return postapi.NewClient(c.Endpoint, &http.Client{}), nil
}
