package postapi

import (
	"errors"
	"fmt"
)

var (
	// 通信失敗または成功以外のステータス
	ErrRequest = errors.New("posts request failed")
	// レスポンスのJSONが想定と異なる
	ErrParse = errors.New("posts response could not be parsed")
)

// 成功以外のHTTPステータス
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.URL, e.StatusCode)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrRequest
}

// レスポンス本文のパース失敗
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse response: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// 通信エラー
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("request failed: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func (e *NetworkError) Is(target error) bool {
	return target == ErrRequest
}
