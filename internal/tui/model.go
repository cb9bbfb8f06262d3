// Package tui is a terminal frontend for the post board. The list and
// the create form share one screen; flows run as commands and report
// back through a Sink.
package tui

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"postboard/internal/board"
	"postboard/internal/model"
)

type focus int

const (
	focusList focus = iota
	focusFilter
	focusTitle
	focusBody
)

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	labelStyle     = lipgloss.NewStyle().Bold(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	separatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

// Model is the bubbletea model of the board.
type Model struct {
	board *board.Board
	ctx   context.Context
	keys  KeyMap

	// program is shared by every copy of the model so SetProgram on the
	// original reaches the copies bubbletea hands around.
	program *atomic.Pointer[tea.Program]
	send    func(tea.Msg)

	posts       []model.Post
	listLoading bool
	selected    int
	err         string

	filter textinput.Model
	title  textinput.Model
	body   textarea.Model
	focus  focus

	formLoading bool
	created     *model.Post
	formErr     string

	width int
}

// NewModel returns a model running flows against b. Call SetProgram once
// the tea.Program exists; flow results arriving earlier are dropped.
func NewModel(ctx context.Context, b *board.Board) Model {
	filter := textinput.New()
	filter.Prompt = "Filter: "
	filter.Placeholder = "keyword"

	title := textinput.New()
	title.Prompt = "Title: "
	title.Placeholder = "Title"

	body := textarea.New()
	body.Placeholder = "Body"
	body.ShowLineNumbers = false
	body.SetHeight(4)

	program := &atomic.Pointer[tea.Program]{}
	return Model{
		board:   b,
		ctx:     ctx,
		keys:    DefaultKeyMap,
		program: program,
		send: func(msg tea.Msg) {
			if p := program.Load(); p != nil {
				p.Send(msg)
			}
		},
		filter: filter,
		title:  title,
		body:   body,
	}
}

// SetProgram enables delivery of flow results.
func (m Model) SetProgram(p *tea.Program) {
	m.program.Store(p)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.body.SetWidth(max(msg.Width-2, 20))
		return m, nil

	case listLoadingMsg:
		m.posts = nil
		m.listLoading = true
		return m, nil
	case postsMsg:
		m.posts = msg.posts
		m.listLoading = false
		m.selected = 0
		return m, nil
	case removePostMsg:
		m.removePost(msg.id)
		return m, nil
	case clearListMsg:
		m.posts = nil
		m.listLoading = false
		return m, nil
	case errorMsg:
		m.err = msg.text
		return m, nil
	case formLoadingMsg:
		m.formLoading = true
		m.created = nil
		return m, nil
	case createdMsg:
		m.formLoading = false
		m.created = &msg.post
		return m, nil
	case clearFormResultMsg:
		m.formLoading = false
		m.created = nil
		return m, nil
	case formErrorMsg:
		m.formErr = msg.text
		return m, nil
	case resetFormMsg:
		m.title.Reset()
		m.body.Reset()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m.updateFocused(msg)
}

func (m *Model) removePost(id int) {
	kept := m.posts[:0]
	for _, p := range m.posts {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	m.posts = kept
	if m.selected >= len(m.posts) {
		m.selected = max(len(m.posts)-1, 0)
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	}

	switch m.focus {
	case focusList:
		return m.handleListKey(msg)
	case focusFilter:
		switch {
		case key.Matches(msg, m.keys.Confirm):
			m.setFocus(focusList)
			return m.fetch()
		case key.Matches(msg, m.keys.Back):
			m.setFocus(focusList)
			return m, nil
		}
	case focusTitle, focusBody:
		switch {
		case key.Matches(msg, m.keys.Back):
			m.setFocus(focusList)
			return m, nil
		case key.Matches(msg, m.keys.Next):
			if m.focus == focusTitle {
				return m, m.setFocus(focusBody)
			}
			m.setFocus(focusList)
			return m, nil
		case m.focus == focusTitle && key.Matches(msg, m.keys.Confirm):
			return m, m.setFocus(focusBody)
		}
	}
	return m.updateFocused(msg)
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Fetch):
		return m.fetch()
	case key.Matches(msg, m.keys.Filter):
		return m, m.setFocus(focusFilter)
	case key.Matches(msg, m.keys.NewPost), key.Matches(msg, m.keys.Next):
		return m, m.setFocus(focusTitle)
	case key.Matches(msg, m.keys.Delete):
		if len(m.posts) == 0 {
			return m, nil
		}
		return m, m.deleteCmd(m.posts[m.selected].ID)
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.posts)-1 {
			m.selected++
		}
	}
	return m, nil
}

// setFocus moves keyboard input to f and returns the cursor blink command
// of the newly focused field.
func (m *Model) setFocus(f focus) tea.Cmd {
	m.focus = f
	m.filter.Blur()
	m.title.Blur()
	m.body.Blur()
	switch f {
	case focusFilter:
		return m.filter.Focus()
	case focusTitle:
		return m.title.Focus()
	case focusBody:
		return m.body.Focus()
	}
	return nil
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusFilter:
		m.filter, cmd = m.filter.Update(msg)
	case focusTitle:
		m.title, cmd = m.title.Update(msg)
	case focusBody:
		m.body, cmd = m.body.Update(msg)
	}
	return m, cmd
}

// fetch shows the loading indicator right away and starts the fetch flow.
// Earlier fetches still in flight are not cancelled.
func (m Model) fetch() (tea.Model, tea.Cmd) {
	m.posts = nil
	m.listLoading = true
	m.err = ""

	sink := &Sink{send: m.send}
	b, ctx, keyword := m.board, m.ctx, m.filter.Value()
	return m, func() tea.Msg {
		_ = b.Fetch(ctx, sink, keyword)
		return nil
	}
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	m.formErr = ""
	m.formLoading = true
	m.created = nil

	sink := &Sink{send: m.send, title: m.title.Value(), body: m.body.Value()}
	b, ctx := m.board, m.ctx
	return m, func() tea.Msg {
		_ = b.Submit(ctx, sink)
		return nil
	}
}

func (m Model) deleteCmd(id int) tea.Cmd {
	sink := &Sink{send: m.send}
	b, ctx := m.board, m.ctx
	return func() tea.Msg {
		_ = b.Delete(ctx, sink, id)
		return nil
	}
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("Posts"))
	s.WriteString("\n")
	if m.focus == focusFilter || m.filter.Value() != "" {
		s.WriteString(m.filter.View())
		s.WriteString("\n")
	}
	if m.err != "" {
		s.WriteString(errorStyle.Render(m.err))
		s.WriteString("\n")
	}
	s.WriteString(m.listView())

	s.WriteString("\n")
	s.WriteString(headerStyle.Render("Create a Post"))
	s.WriteString("\n")
	s.WriteString(m.title.View())
	s.WriteString("\n")
	s.WriteString(m.body.View())
	s.WriteString("\n")
	if m.formErr != "" {
		s.WriteString(errorStyle.Render(m.formErr))
		s.WriteString("\n")
	}
	s.WriteString(m.resultView())

	s.WriteString("\n")
	s.WriteString(helpStyle.Render(m.helpLine()))
	return s.String()
}

func (m Model) listView() string {
	if m.listLoading {
		return board.LoadingMessage + "\n"
	}
	width := m.width
	if width <= 0 {
		width = 40
	}
	separator := separatorStyle.Render(strings.Repeat("─", width))

	var s strings.Builder
	for i, p := range m.posts {
		entry := fmt.Sprintf("%s %d\n%s %s\n%s %s",
			labelStyle.Render("ID:"), p.ID,
			labelStyle.Render("Title:"), p.Title,
			labelStyle.Render("Body:"), p.Body)
		if i == m.selected && m.focus == focusList {
			entry = selectedStyle.Render(entry)
		}
		s.WriteString(entry)
		s.WriteString("\n")
		s.WriteString(separator)
		s.WriteString("\n")
	}
	return s.String()
}

func (m Model) resultView() string {
	if m.formLoading {
		return board.LoadingMessage + "\n"
	}
	if m.created == nil {
		return ""
	}
	return successStyle.Render(board.CreatedMessage) + "\n" +
		fmt.Sprintf("%s %d\n%s %s\n%s %s\n",
			labelStyle.Render("ID:"), m.created.ID,
			labelStyle.Render("Title:"), m.created.Title,
			labelStyle.Render("Body:"), m.created.Body)
}

func (m Model) helpLine() string {
	switch m.focus {
	case focusFilter:
		return "enter apply • esc back"
	case focusTitle, focusBody:
		return "tab next • ctrl+s submit • esc back"
	}
	return "f fetch • / filter • n new post • d delete • ctrl+s submit • q quit"
}
