package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

var Logger *slog.Logger

func init() {
	Init(os.Stdout, slog.LevelInfo)
}

// 出力先とレベルを指定してロガーを初期化
func Init(w io.Writer, level slog.Level) {
	Logger = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// レベル文字列の解釈 (不明な値は info)
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// 情報ログ
func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

// 警告ログ
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

// エラーログ
func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}

// デバッグログ
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}
