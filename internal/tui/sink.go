package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"postboard/internal/board"
	"postboard/internal/model"
)

// Messages carrying page mutations from a running flow into the model.
type (
	listLoadingMsg     struct{}
	postsMsg           struct{ posts []model.Post }
	removePostMsg      struct{ id int }
	clearListMsg       struct{}
	errorMsg           struct{ text string }
	formLoadingMsg     struct{}
	createdMsg         struct{ post model.Post }
	clearFormResultMsg struct{}
	formErrorMsg       struct{ text string }
	resetFormMsg       struct{}
)

// Sink is the board.Page a flow writes to. Every call becomes a message
// for the update loop, so the model is only ever mutated there. The form
// values are captured when the flow starts.
type Sink struct {
	send        func(tea.Msg)
	title, body string
}

var _ board.Page = (*Sink)(nil)

func (s *Sink) ListLoading() { s.send(listLoadingMsg{}) }
func (s *Sink) RenderPosts(posts []model.Post) { s.send(postsMsg{posts: posts}) }
func (s *Sink) RemovePost(id int) { s.send(removePostMsg{id: id}) }
func (s *Sink) ClearList() { s.send(clearListMsg{}) }
func (s *Sink) SetError(msg string) { s.send(errorMsg{text: msg}) }
func (s *Sink) FormValues() (string, string) { return s.title, s.body }
func (s *Sink) FormLoading() { s.send(formLoadingMsg{}) }
func (s *Sink) RenderCreated(post model.Post) { s.send(createdMsg{post: post}) }
func (s *Sink) ClearFormResult() { s.send(clearFormResultMsg{}) }
func (s *Sink) SetFormError(msg string) { s.send(formErrorMsg{text: msg}) }
func (s *Sink) ResetForm() { s.send(resetFormMsg{}) }
