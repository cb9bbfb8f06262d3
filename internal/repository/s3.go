package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"postboard/internal/model"
	"postboard/pkg/logger"
)

const postsPrefix = "posts/"

// 利用するS3 APIの部分集合 (*s3.Client が満たす)
type S3API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, opts ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, opts ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// 投稿が存在しない
var ErrNotFound = errors.New("post not found")

// S3ベースの投稿リポジトリ
type S3Repository struct {
	client S3API
	bucket string
}

// S3リポジトリのコンストラクタ
func NewS3Repository(ctx context.Context, bucket string) (*S3Repository, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return NewS3RepositoryWithClient(s3.NewFromConfig(cfg), bucket), nil
}

// クライアントを指定してリポジトリを生成
func NewS3RepositoryWithClient(client S3API, bucket string) *S3Repository {
	return &S3Repository{
		client: client,
		bucket: bucket,
	}
}

func postKey(id int) string {
	return fmt.Sprintf("%s%d.json", postsPrefix, id)
}

// postKey の逆変換 (数値でないキーは ok=false)
func keyID(key string) (int, bool) {
	name := strings.TrimSuffix(strings.TrimPrefix(key, postsPrefix), ".json")
	id, err := strconv.Atoi(name)
	if err != nil {
		return 0, false
	}
	return id, true
}

// 404エラーの判定
func isNotFoundError(err error) bool {
	var notFound *types.NoSuchKey
	return err != nil && errors.As(err, &notFound)
}

// S3キーから投稿を取得
func (r *S3Repository) getPostByKey(ctx context.Context, key string) (*model.Post, error) {
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &r.bucket,
		Key:    &key,
	})
	if err != nil {
		if isNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read post body: %w", err)
	}

	var post model.Post
	if err := json.Unmarshal(body, &post); err != nil {
		return nil, fmt.Errorf("failed to unmarshal post: %w", err)
	}

	return &post, nil
}

// 投稿をS3に保存
func (r *S3Repository) savePost(ctx context.Context, post *model.Post) error {
	body, err := json.Marshal(post)
	if err != nil {
		return fmt.Errorf("failed to marshal post: %w", err)
	}

	key := postKey(post.ID)
	contentType := "application/json"
	_, err = r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &r.bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: &contentType,
	})
	if err != nil {
		logger.Error("failed to save post", "key", key, "error", err)
		return fmt.Errorf("failed to save post: %w", err)
	}

	logger.Info("successfully saved post", "key", key)
	return nil
}

// 投稿キーの一覧 (ページングをたどる)
func (r *S3Repository) listKeys(ctx context.Context) ([]string, error) {
	prefix := postsPrefix
	var keys []string
	var token *string
	for {
		out, err := r.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            &r.bucket,
			Prefix:            &prefix,
			ContinuationToken: token,
		})
		if err != nil {
			return nil, err
		}
		for _, obj := range out.Contents {
			if obj.Key != nil && strings.HasSuffix(*obj.Key, ".json") {
				keys = append(keys, *obj.Key)
			}
		}
		if out.IsTruncated == nil || !*out.IsTruncated {
			return keys, nil
		}
		token = out.NextContinuationToken
	}
}

// 投稿一覧をID順に取得
func (r *S3Repository) ListPosts(ctx context.Context) ([]model.Post, error) {
	logger.Info("listing posts from S3", "bucket", r.bucket)

	keys, err := r.listKeys(ctx)
	if err != nil {
		logger.Error("failed to list objects", "error", err)
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	posts := make([]model.Post, 0, len(keys))
	for _, key := range keys {
		post, err := r.getPostByKey(ctx, key)
		if err != nil {
			logger.Error("failed to get post", "key", key, "error", err)
			return nil, fmt.Errorf("failed to list posts: %s: %w", key, err)
		}
		posts = append(posts, *post)
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })

	logger.Info("successfully listed posts", "count", len(posts))
	return posts, nil
}

// 指定IDの投稿を取得
func (r *S3Repository) GetPost(ctx context.Context, id int) (*model.Post, error) {
	logger.Info("getting post from S3", "id", id, "bucket", r.bucket)
	return r.getPostByKey(ctx, postKey(id))
}

// 投稿を作成 (IDはキー上の最大値+1、中身が壊れたオブジェクトも上書きしない)
func (r *S3Repository) CreatePost(ctx context.Context, in model.PostRequest) (*model.Post, error) {
	keys, err := r.listKeys(ctx)
	if err != nil {
		logger.Error("failed to list objects", "error", err)
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	next := 1
	for _, key := range keys {
		if id, ok := keyID(key); ok && id >= next {
			next = id + 1
		}
	}

	post := &model.Post{
		ID:     next,
		Title:  in.Title,
		Body:   in.Body,
		UserID: in.UserID,
	}
	logger.Info("creating post in S3", "id", post.ID, "title", post.Title)
	if err := r.savePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// 投稿を削除
func (r *S3Repository) DeletePost(ctx context.Context, id int) error {
	logger.Info("deleting post from S3", "id", id)

	key := postKey(id)
	_, err := r.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &r.bucket,
		Key:    &key,
	})
	if err != nil {
		logger.Error("failed to delete post", "id", id, "error", err)
		return fmt.Errorf("failed to delete post: %w", err)
	}

	logger.Info("successfully deleted post", "id", id)
	return nil
}
