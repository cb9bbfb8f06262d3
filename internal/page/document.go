// Package page renders the board's regions as an HTML document.
package page

import (
	"bytes"
	"embed"
	"html/template"
	"io"

	"postboard/internal/board"
	"postboard/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Document holds the state of one page. It is not safe for concurrent
// use; the web frontend builds one per request.
type Document struct {
	// Base is the path prefix form actions are resolved against.
	Base    string
	Keyword string

	posts       []model.Post
	listLoading bool
	err         string

	title, body string
	formLoading bool
	created     *model.Post
	formErr     string
}

var _ board.Page = (*Document)(nil)

// New returns an empty document whose form holds title and body.
func New(base, title, body string) *Document {
	if base == "" {
		base = "/"
	}
	return &Document{Base: base, title: title, body: body}
}

func (d *Document) ListLoading() {
	d.posts = nil
	d.listLoading = true
}

func (d *Document) RenderPosts(posts []model.Post) {
	d.posts = append([]model.Post(nil), posts...)
	d.listLoading = false
}

func (d *Document) RemovePost(id int) {
	kept := d.posts[:0]
	for _, p := range d.posts {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	d.posts = kept
}

func (d *Document) ClearList() {
	d.posts = nil
	d.listLoading = false
}

func (d *Document) SetError(msg string) { d.err = msg }

func (d *Document) FormValues() (string, string) { return d.title, d.body }

func (d *Document) FormLoading() {
	d.formLoading = true
	d.created = nil
}

func (d *Document) RenderCreated(post model.Post) {
	d.formLoading = false
	d.created = &post
}

func (d *Document) ClearFormResult() {
	d.formLoading = false
	d.created = nil
}

func (d *Document) SetFormError(msg string) { d.formErr = msg }

func (d *Document) ResetForm() {
	d.title, d.body = "", ""
}

// Posts returns the posts currently in the list region.
func (d *Document) Posts() []model.Post { return d.posts }

// ErrorText returns the fetch error region text.
func (d *Document) ErrorText() string { return d.err }

// FormErrorText returns the form error region text.
func (d *Document) FormErrorText() string { return d.formErr }

// Created returns the confirmed post, or nil.
func (d *Document) Created() *model.Post { return d.created }

type view struct {
	Base           string
	Keyword        string
	Posts          []model.Post
	ListLoading    bool
	Error          string
	Title          string
	Body           string
	FormLoading    bool
	Created        *model.Post
	FormError      string
	LoadingMessage string
	CreatedMessage string
}

func (d *Document) view() view {
	return view{
		Base:           d.Base,
		Keyword:        d.Keyword,
		Posts:          d.posts,
		ListLoading:    d.listLoading,
		Error:          d.err,
		Title:          d.title,
		Body:           d.body,
		FormLoading:    d.formLoading,
		Created:        d.created,
		FormError:      d.formErr,
		LoadingMessage: board.LoadingMessage,
		CreatedMessage: board.CreatedMessage,
	}
}

// WriteTo renders the full HTML page.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "page", d.view()); err != nil {
		return 0, err
	}
	return buf.WriteTo(w)
}

// ListHTML renders only the list region.
func (d *Document) ListHTML() (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "list", d.view()); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ResultHTML renders only the form result region.
func (d *Document) ResultHTML() (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "result", d.view()); err != nil {
		return "", err
	}
	return buf.String(), nil
}
