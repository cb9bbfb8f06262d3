package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"postboard/internal/board"
	"postboard/internal/model"
)

type stubService struct {
	posts     []model.Post
	err       error
	requested model.PostRequest
	deleted   []int
}

func (s *stubService) ListPosts(context.Context) ([]model.Post, error) { return s.posts, s.err }

func (s *stubService) CreatePost(_ context.Context, in model.PostRequest) (*model.Post, error) {
	s.requested = in
	if s.err != nil {
		return nil, s.err
	}
	return &model.Post{ID: 101, Title: in.Title, Body: in.Body, UserID: in.UserID}, nil
}

func (s *stubService) DeletePost(_ context.Context, id int) error {
	s.deleted = append(s.deleted, id)
	return s.err
}

// testModel returns a model whose sink messages are collected into the
// returned slice instead of going through a tea.Program.
func testModel(service *stubService) (Model, *[]tea.Msg) {
	var sent []tea.Msg
	m := NewModel(context.Background(), board.New(service))
	m.send = func(msg tea.Msg) { sent = append(sent, msg) }
	return m, &sent
}

// run executes cmd synchronously and feeds every sink message back into
// the model.
func run(t *testing.T, m Model, cmd tea.Cmd, sent *[]tea.Msg) Model {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	cmd()
	for _, msg := range *sent {
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	*sent = nil
	return m
}

func press(m Model, k tea.KeyMsg) (Model, tea.Cmd) {
	updated, cmd := m.Update(k)
	return updated.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = press(m, runes(string(r)))
	}
	return m
}

func makePosts(n int) []model.Post {
	posts := make([]model.Post, n)
	for i := range posts {
		posts[i] = model.Post{ID: i + 1, Title: "title", Body: "body", UserID: 1}
	}
	return posts
}

func TestFetchKeyShowsLoadingThenPosts(t *testing.T) {
	m, sent := testModel(&stubService{posts: makePosts(15)})

	m, cmd := press(m, runes("f"))
	if !m.listLoading || !strings.Contains(m.View(), board.LoadingMessage) {
		t.Fatalf("loading indicator not shown before the request")
	}

	m = run(t, m, cmd, sent)
	if m.listLoading {
		t.Errorf("still loading after fetch")
	}
	if len(m.posts) != board.PostLimit {
		t.Errorf("got %d posts, want %d", len(m.posts), board.PostLimit)
	}
	if n := strings.Count(m.View(), "ID:"); n != board.PostLimit {
		t.Errorf("view shows %d entries, want %d", n, board.PostLimit)
	}
}

func TestFetchFailureShowsError(t *testing.T) {
	m, sent := testModel(&stubService{err: errors.New("503")})

	m, cmd := press(m, runes("f"))
	m = run(t, m, cmd, sent)

	if len(m.posts) != 0 || m.listLoading {
		t.Errorf("list not cleared: %d posts, loading %v", len(m.posts), m.listLoading)
	}
	if m.err != board.FetchErrorMessage {
		t.Errorf("err = %q", m.err)
	}
}

func TestFilterThenFetch(t *testing.T) {
	posts := makePosts(5)
	posts[2].Title = "golang news"
	m, sent := testModel(&stubService{posts: posts})

	m, _ = press(m, runes("/"))
	if m.focus != focusFilter {
		t.Fatalf("focus = %v, want filter", m.focus)
	}
	m = typeText(m, "GOLANG")
	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = run(t, m, cmd, sent)

	if m.focus != focusList {
		t.Errorf("focus = %v, want list after enter", m.focus)
	}
	if len(m.posts) != 1 || m.posts[0].ID != 3 {
		t.Errorf("posts = %+v, want only id 3", m.posts)
	}
}

func TestSubmitClearsFormOnSuccess(t *testing.T) {
	service := &stubService{}
	m, sent := testModel(service)

	m, _ = press(m, runes("n"))
	m = typeText(m, "T")
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != focusBody {
		t.Fatalf("focus = %v, want body", m.focus)
	}
	m = typeText(m, "B")

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if !m.formLoading {
		t.Errorf("form loading indicator not shown")
	}
	m = run(t, m, cmd, sent)

	if service.requested != model.NewPostRequest("T", "B") {
		t.Errorf("request = %+v", service.requested)
	}
	if m.created == nil || m.created.ID != 101 {
		t.Fatalf("created = %+v", m.created)
	}
	if m.title.Value() != "" || m.body.Value() != "" {
		t.Errorf("form = %q/%q, want cleared", m.title.Value(), m.body.Value())
	}
	view := m.View()
	if !strings.Contains(view, board.CreatedMessage) || !strings.Contains(view, "101") {
		t.Errorf("confirmation missing from view:\n%s", view)
	}
}

func TestSubmitFailureKeepsForm(t *testing.T) {
	m, sent := testModel(&stubService{err: errors.New("offline")})

	m, _ = press(m, runes("n"))
	m = typeText(m, "draft")

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	m = run(t, m, cmd, sent)

	if m.title.Value() != "draft" {
		t.Errorf("title = %q, want retained", m.title.Value())
	}
	if m.formErr != board.SubmitErrorMessage || m.formLoading {
		t.Errorf("formErr = %q, loading = %v", m.formErr, m.formLoading)
	}
}

func TestTypingInFormDoesNotTriggerListKeys(t *testing.T) {
	m, _ := testModel(&stubService{})

	m, _ = press(m, runes("n"))
	m, cmd := press(m, runes("f"))
	if m.listLoading {
		t.Errorf("typing f in the title started a fetch")
	}
	_ = cmd
	if m.title.Value() != "f" {
		t.Errorf("title = %q, want f", m.title.Value())
	}
}

func TestDeleteSelected(t *testing.T) {
	service := &stubService{posts: makePosts(3)}
	m, sent := testModel(service)

	m, cmd := press(m, runes("f"))
	m = run(t, m, cmd, sent)

	m, _ = press(m, runes("j"))
	m, cmd = press(m, runes("d"))
	m = run(t, m, cmd, sent)

	if len(service.deleted) != 1 || service.deleted[0] != 2 {
		t.Errorf("deleted = %v, want [2]", service.deleted)
	}
	if len(m.posts) != 2 {
		t.Errorf("got %d posts, want 2", len(m.posts))
	}
	for _, p := range m.posts {
		if p.ID == 2 {
			t.Errorf("post 2 still listed")
		}
	}
}

func TestDeleteWithEmptyList(t *testing.T) {
	m, _ := testModel(&stubService{})
	if _, cmd := press(m, runes("d")); cmd != nil {
		t.Errorf("delete with no posts returned a command")
	}
}

func TestQuit(t *testing.T) {
	m, _ := testModel(&stubService{})
	_, cmd := press(m, runes("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("q did not quit")
	}
}
