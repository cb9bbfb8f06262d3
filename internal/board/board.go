// Package board holds the user-triggered flows of the post board: fetch
// and render the post list, submit a new post, and delete a post.
//
// Each flow is sequential: update the page, make one blocking call to the
// posts service, then update the page again with the result. Flows keep no
// state between calls. Two overlapping calls of the same flow are not
// coordinated, so whichever finishes last owns the page regions.
package board

import (
	"context"

	"postboard/internal/metrics"
	"postboard/internal/model"
	"postboard/pkg/logger"
)

// PostLimit is the number of posts rendered by a fetch.
const PostLimit = 10

// User-facing messages written to the page.
const (
	LoadingMessage     = "Loading..."
	FetchErrorMessage  = "Error loading posts. Please try again."
	SubmitErrorMessage = "Error submitting post. Please try again."
	DeleteErrorMessage = "Error deleting post. Please try again."
	CreatedMessage     = "Post created successfully!"
)

// Flow names used as metric labels.
const (
	flowFetch  = "fetch"
	flowSubmit = "submit"
	flowDelete = "delete"
)

// PostService is the remote collaborator the flows talk to.
type PostService interface {
	ListPosts(ctx context.Context) ([]model.Post, error)
	CreatePost(ctx context.Context, in model.PostRequest) (*model.Post, error)
	DeletePost(ctx context.Context, id int) error
}

// Page is the UI sink. Implementations own the regions and decide how
// they are displayed.
type Page interface {
	// List region.
	ListLoading()
	RenderPosts(posts []model.Post)
	RemovePost(id int)
	ClearList()

	// Fetch error region. An empty message clears it.
	SetError(msg string)

	// Form.
	FormValues() (title, body string)
	FormLoading()
	RenderCreated(post model.Post)
	ClearFormResult()
	SetFormError(msg string)
	ResetForm()
}

// Board wires the flows to a posts service.
type Board struct {
	service PostService
}

func New(service PostService) *Board {
	return &Board{service: service}
}

// Fetch loads the posts, keeps those matching keyword, and renders the
// first PostLimit of them in server order.
func (b *Board) Fetch(ctx context.Context, page Page, keyword string) error {
	page.ListLoading()
	page.SetError("")

	posts, err := b.service.ListPosts(ctx)
	metrics.ObserveFlow(flowFetch, err)
	if err != nil {
		page.ClearList()
		page.SetError(FetchErrorMessage)
		logger.Error("fetch error", "error", err)
		return err
	}

	page.RenderPosts(Select(posts, keyword))
	return nil
}

// Select filters posts by keyword and truncates to PostLimit.
func Select(posts []model.Post, keyword string) []model.Post {
	selected := make([]model.Post, 0, min(len(posts), PostLimit))
	for _, p := range posts {
		if len(selected) == PostLimit {
			break
		}
		if p.Matches(keyword) {
			selected = append(selected, p)
		}
	}
	return selected
}

// Submit sends the form contents as a new post. The form is reset only
// when the service accepts it.
func (b *Board) Submit(ctx context.Context, page Page) error {
	title, body := page.FormValues()

	page.SetFormError("")
	page.FormLoading()

	post, err := b.service.CreatePost(ctx, model.NewPostRequest(title, body))
	metrics.ObserveFlow(flowSubmit, err)
	if err != nil {
		page.ClearFormResult()
		page.SetFormError(SubmitErrorMessage)
		logger.Error("post error", "error", err)
		return err
	}

	page.RenderCreated(*post)
	page.ResetForm()
	return nil
}

// Delete removes a post remotely and then from the list region.
func (b *Board) Delete(ctx context.Context, page Page, id int) error {
	page.SetError("")

	err := b.service.DeletePost(ctx, id)
	metrics.ObserveFlow(flowDelete, err)
	if err != nil {
		page.SetError(DeleteErrorMessage)
		logger.Error("delete error", "id", id, "error", err)
		return err
	}

	page.RemovePost(id)
	return nil
}
