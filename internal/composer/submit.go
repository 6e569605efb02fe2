package composer

import (
	"fmt"
	"log"
	"strings"

	"github.com/doniai/doniai-cli/internal/api"
	"github.com/doniai/doniai-cli/internal/markdown"
	"github.com/doniai/doniai-cli/internal/validate"
)

// Notices shown after a submission.
const (
	NoticePublished    = "Post published"
	NoticeFailedPrefix = "Publish failed: "
	NoticeNetwork      = "Something went wrong while publishing"
	NoticeInvalid      = "Fix the highlighted fields"
)

// Poster sends a post to the forum. *api.Client satisfies it.
type Poster interface {
	CreatePost(req api.CreatePostRequest) (*api.Post, error)
}

// Form is everything the compose screen holds at submit time.
type Form struct {
	Title      string
	Tags       *TagCollector
	Buffer     *Buffer
	CategoryID int
	ReadLimit  int
}

// Outcome classifies a submission.
type Outcome int

const (
	Published Outcome = iota
	Invalid
	Rejected
	NetworkFailure
)

func (o Outcome) String() string {
	switch o {
	case Published:
		return "published"
	case Invalid:
		return "invalid"
	case Rejected:
		return "rejected"
	case NetworkFailure:
		return "network failure"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Result reports what happened to a submission. The form is never modified
// by Submit; callers decide what to do on Published.
type Result struct {
	Outcome Outcome
	Notice  string
	Errors  validate.Errors
	Request api.CreatePostRequest
	Post    *api.Post
	Err     error
}

// Submitter renders a Form with the preview renderer and posts it. It holds
// no in-flight state: two Submit calls send two requests.
type Submitter struct {
	poster   Poster
	renderer markdown.Renderer
}

// NewSubmitter wires a poster to the renderer the preview uses.
func NewSubmitter(poster Poster, renderer markdown.Renderer) *Submitter {
	return &Submitter{poster: poster, renderer: renderer}
}

// Build validates f and renders the request body without sending it.
func (s *Submitter) Build(f Form) (api.CreatePostRequest, validate.Errors) {
	errs := CheckForm(f)

	var source string
	if f.Buffer != nil {
		source = f.Buffer.Value()
	}
	var tags string
	if f.Tags != nil {
		tags = f.Tags.Field()
	}

	req := api.CreatePostRequest{
		Title:      f.Title,
		Tags:       tags,
		CategoryID: f.CategoryID,
		ReadLimit:  f.ReadLimit,
	}
	if len(errs) > 0 {
		return req, errs
	}

	html, err := s.renderer.Render(source)
	if err != nil {
		errs.Add("content", err.Error())
		return req, errs
	}
	req.Content = html
	return req, errs
}

// Submit sends one request for f.
func (s *Submitter) Submit(f Form) Result {
	req, errs := s.Build(f)
	if len(errs) > 0 {
		return Result{Outcome: Invalid, Notice: NoticeInvalid, Errors: errs, Request: req, Err: errs}
	}

	post, err := s.poster.CreatePost(req)
	if err != nil {
		if msg, ok := api.ServerMessage(err); ok {
			return Result{Outcome: Rejected, Notice: NoticeFailedPrefix + msg, Request: req, Err: err}
		}
		log.Printf("publish: %v", err)
		return Result{Outcome: NetworkFailure, Notice: NoticeNetwork, Request: req, Err: err}
	}
	return Result{Outcome: Published, Notice: NoticePublished, Request: req, Post: post}
}

// CheckForm runs the client-side checks on f.
func CheckForm(f Form) validate.Errors {
	errs := validate.Errors{}
	if strings.TrimSpace(f.Title) == "" {
		errs.Add("title", "title is required")
	}
	if f.Buffer == nil || strings.TrimSpace(f.Buffer.Value()) == "" {
		errs.Add("content", "content is required")
	}
	if f.CategoryID <= 0 {
		errs.Add("category", "choose a category")
	}
	if f.ReadLimit < api.ReadPublic || f.ReadLimit > api.ReadPrivate {
		errs.Add("read_limit", "read limit must be between 1 and 4")
	}
	return errs
}
