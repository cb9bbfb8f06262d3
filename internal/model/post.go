package model

import "strings"

// 投稿のデータモデル (idはサーバー側で採番)
type Post struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	UserID int    `json:"userId"`
}

// 投稿作成リクエスト
type PostRequest struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	UserID int    `json:"userId"`
}

// 作成リクエストに固定で付与するユーザーID
const DefaultUserID = 1

// フォーム入力から作成リクエストを組み立てる
func NewPostRequest(title, body string) PostRequest {
	return PostRequest{
		Title:  title,
		Body:   body,
		UserID: DefaultUserID,
	}
}

// タイトルか本文にキーワードを含むか (大文字小文字は区別しない)
func (p Post) Matches(keyword string) bool {
	if keyword == "" {
		return true
	}
	k := strings.ToLower(keyword)
	return strings.Contains(strings.ToLower(p.Title), k) ||
		strings.Contains(strings.ToLower(p.Body), k)
}
