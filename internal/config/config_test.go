package config

import (
	"testing"

	"postboard/internal/postapi"
)

func env(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(env(nil))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Backend != BackendHTTP || cfg.Endpoint != postapi.DefaultEndpoint || cfg.Port != "8080" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestFromEnvS3(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"POSTS_BACKEND": "s3",
		"POSTS_BUCKET":  "board-posts",
		"LOG_LEVEL":     "debug",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Bucket != "board-posts" || cfg.LogLevel != "debug" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"http", Config{Backend: BackendHTTP}, false},
		{"s3 with bucket", Config{Backend: BackendS3, Bucket: "b"}, false},
		{"s3 without bucket", Config{Backend: BackendS3}, true},
		{"unknown", Config{Backend: "ftp"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
