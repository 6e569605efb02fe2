package api

import (
	"time"
)

// --- Response Envelope ---

// envelope covers the discriminants the forum mixes across endpoints: JSON
// handlers answer with "success", the auth pages with "status".
type envelope struct {
	Success *bool  `json:"success,omitempty"`
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
	Error   any    `json:"error,omitempty"`
	Detail  any    `json:"detail,omitempty"`
}

func (e envelope) failed() bool {
	if e.Success != nil && !*e.Success {
		return true
	}
	return e.Status == "error" || e.Status == "fail"
}

// --- User ---

// User is a forum member.
type User struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Avatar        string    `json:"avatar,omitempty"`
	Level         int       `json:"level,omitempty"`
	Motto         string    `json:"motto,omitempty"`
	Github        string    `json:"github,omitempty"`
	GoogleAccount string    `json:"google_account,omitempty"`
	CreatedAt     time.Time `json:"created_at,omitempty"`
}

// Session describes the signed-in user returned by /login.
type Session struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Cookie string `json:"-"`
}

// --- Post ---

// Read limits accepted by the forum.
const (
	ReadPublic  = 1
	ReadLevel1  = 2
	ReadLevel2  = 3
	ReadPrivate = 4
)

// ReadLimitLabel names a read limit for display.
func ReadLimitLabel(limit int) string {
	switch limit {
	case ReadPublic:
		return "public"
	case ReadLevel1:
		return "Lv1+"
	case ReadLevel2:
		return "Lv2+"
	case ReadPrivate:
		return "private"
	default:
		return "unknown"
	}
}

// Post is a published article. Content holds rendered HTML.
type Post struct {
	ID         uint      `json:"id"`
	Title      string    `json:"title"`
	UserID     int       `json:"user_id"`
	Author     string    `json:"author"`
	Category   string    `json:"category"`
	CategoryID int       `json:"category_id"`
	Content    string    `json:"content"`
	Tags       string    `json:"tags"`
	Views      int       `json:"views"`
	Replies    int       `json:"replies"`
	Favorites  int       `json:"favorites"`
	Likes      int       `json:"likes"`
	ReadLimit  int       `json:"read_limit"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at,omitempty"`
}

// CreatePostRequest is the body of POST /api/posts. Tags is the serialized
// JSON array string, Content is HTML.
type CreatePostRequest struct {
	Title      string `json:"title"`
	Tags       string `json:"tags"`
	Content    string `json:"content"`
	CategoryID int    `json:"category_id"`
	ReadLimit  int    `json:"read_limit"`
}

// CreatePostResponse is the success body of POST /api/posts.
type CreatePostResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Post    Post   `json:"post"`
}

// --- Comment ---

// Comment is a reply on a post. ParentID is 0 for top-level comments.
type Comment struct {
	ID         uint      `json:"id"`
	Content    string    `json:"content"`
	PostID     uint      `json:"post_id"`
	UserID     uint      `json:"user_id"`
	ParentID   uint      `json:"parent_id"`
	LikeCount  int       `json:"like_count"`
	ReplyCount int       `json:"reply_count"`
	CreatedAt  time.Time `json:"created_at"`
	User       User      `json:"user"`
}

// CreateCommentRequest is the body of POST /api/comments.
type CreateCommentRequest struct {
	Content  string `json:"content"`
	PostID   uint   `json:"post_id"`
	ParentID uint   `json:"parent_id,omitempty"`
}

// --- Users ---

// ProfileUpdate is the body of PUT /api/users/profile.
type ProfileUpdate struct {
	Motto         string `json:"motto"`
	Github        string `json:"github"`
	GoogleAccount string `json:"google_account"`
}

// PasswordChange is the body of PUT /api/users/password.
type PasswordChange struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// --- Auth ---

// Registration is the register form.
type Registration struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	AgreeTerms      bool
}

// --- Toggles ---

// Toggle is a like/favorite action sent to the forum.
type Toggle string

const (
	Like       Toggle = "like"
	Unlike     Toggle = "unlike"
	Favorite   Toggle = "favorite"
	Unfavorite Toggle = "unfavorite"
)
