package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"postboard/internal/postapi"
)

// 投稿サービスの実装
const (
	BackendHTTP = "http"
	BackendS3   = "s3"
)

// 実行時設定
type Config struct {
	Backend  string
	Endpoint string
	Bucket   string
	LogLevel string
	Port     string
}

// .env (存在すれば) と環境変数から設定を読み込む
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// 環境変数の取得関数から設定を組み立てる
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Backend:  getenv("POSTS_BACKEND"),
		Endpoint: getenv("POSTS_ENDPOINT"),
		Bucket:   getenv("POSTS_BUCKET"),
		LogLevel: getenv("LOG_LEVEL"),
		Port:     getenv("PORT"),
	}
	if cfg.Backend == "" {
		cfg.Backend = BackendHTTP
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = postapi.DefaultEndpoint
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	return cfg, cfg.Validate()
}

// 設定値の検証
func (c Config) Validate() error {
	switch c.Backend {
	case BackendHTTP:
	case BackendS3:
		if c.Bucket == "" {
			return fmt.Errorf("POSTS_BUCKET is required for the %s backend", BackendS3)
		}
	default:
		return fmt.Errorf("unknown POSTS_BACKEND %q", c.Backend)
	}
	return nil
}
