package api

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
)

// Feed tabs.
const (
	TabLatest    = "latest"
	TabHot       = "hot"
	TabRecommend = "recommend"
)

// FeedTabs lists the home feed tabs in display order.
func FeedTabs() []string {
	return []string{TabLatest, TabHot, TabRecommend}
}

// PageSize matches the home page's page size.
const PageSize = 10

// FeedQuery mirrors the home page's tab and page query parameters.
type FeedQuery struct {
	Tab  string
	Page int
}

// WithTab switches tab. The page resets to 1 unless it already is.
func (q FeedQuery) WithTab(tab string) FeedQuery {
	q.Tab = tab
	if q.Page != 1 {
		q.Page = 1
	}
	return q
}

// Encode renders the query as URL parameters.
func (q FeedQuery) Encode() string {
	tab := q.Tab
	if tab == "" {
		tab = TabLatest
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	return "tab=" + tab + "&page=" + strconv.Itoa(page)
}

// ParseFeedQuery reads a stored query string. Unknown tabs fall back to
// latest and bad pages to 1.
func ParseFeedQuery(s string) FeedQuery {
	q := FeedQuery{Tab: TabLatest, Page: 1}
	for _, part := range strings.Split(s, "&") {
		key, value, _ := strings.Cut(part, "=")
		switch key {
		case "tab":
			for _, t := range FeedTabs() {
				if t == value {
					q.Tab = value
				}
			}
		case "page":
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				q.Page = n
			}
		}
	}
	return q
}

// Feed is one page of posts.
type Feed struct {
	Posts      []Post
	Page       int
	TotalPages int
	Total      int
}

// CreatePost publishes a post. Only an explicit "success": true counts as
// published.
func (c *Client) CreatePost(req CreatePostRequest) (*Post, error) {
	data, code, err := c.do(http.MethodPost, "/api/posts", req)
	if err != nil {
		return nil, err
	}
	resp, err := decode[CreatePostResponse](data)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		msg := strings.TrimSpace(resp.Message)
		if msg == "" {
			msg = "request failed"
		}
		return nil, &ServerError{StatusCode: code, Message: msg}
	}
	return &resp.Post, nil
}

// ListPosts returns every post.
func (c *Client) ListPosts() ([]Post, error) {
	data, err := c.get("/api/posts")
	if err != nil {
		return nil, err
	}
	resp, err := decode[struct {
		Posts []Post `json:"posts"`
		Count int    `json:"count"`
	}](data)
	if err != nil {
		return nil, err
	}
	return resp.Posts, nil
}

// GetPost fetches one post.
func (c *Client) GetPost(id uint) (*Post, error) {
	data, err := c.get(fmt.Sprintf("/api/posts/%d", id))
	if err != nil {
		return nil, err
	}
	resp, err := decode[struct {
		Post Post `json:"post"`
	}](data)
	if err != nil {
		return nil, err
	}
	return &resp.Post, nil
}

// FeedPage lists posts for a tab and page. Only categorized posts appear.
func (c *Client) FeedPage(q FeedQuery) (*Feed, error) {
	posts, err := c.ListPosts()
	if err != nil {
		return nil, err
	}
	return PageFeed(posts, q), nil
}

// PageFeed orders posts for q.Tab and slices out q.Page.
func PageFeed(posts []Post, q FeedQuery) *Feed {
	listed := make([]Post, 0, len(posts))
	for _, p := range posts {
		if p.CategoryID > 0 {
			listed = append(listed, p)
		}
	}
	sortForTab(listed, q.Tab)

	total := len(listed)
	pages := (total + PageSize - 1) / PageSize
	page := q.Page
	if page < 1 {
		page = 1
	}
	start := (page - 1) * PageSize
	if start > total {
		start = total
	}
	end := start + PageSize
	if end > total {
		end = total
	}
	return &Feed{Posts: listed[start:end], Page: page, TotalPages: pages, Total: total}
}

func sortForTab(posts []Post, tab string) {
	var less func(a, b Post) bool
	switch tab {
	case TabHot:
		less = func(a, b Post) bool { return a.Likes+a.Views > b.Likes+b.Views }
	case TabRecommend:
		less = func(a, b Post) bool { return a.Favorites > b.Favorites }
	default:
		less = func(a, b Post) bool { return a.CreatedAt.After(b.CreatedAt) }
	}
	sort.SliceStable(posts, func(i, j int) bool { return less(posts[i], posts[j]) })
}

// SearchPosts returns posts whose title contains q, newest first.
func (c *Client) SearchPosts(q string) ([]Post, error) {
	posts, err := c.ListPosts()
	if err != nil {
		return nil, err
	}
	return FilterPosts(posts, q), nil
}

// FilterPosts keeps posts whose title contains q, ignoring case.
func FilterPosts(posts []Post, q string) []Post {
	needle := strings.ToLower(strings.TrimSpace(q))
	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		if needle == "" || strings.Contains(strings.ToLower(p.Title), needle) {
			out = append(out, p)
		}
	}
	sortForTab(out, TabLatest)
	return out
}

// LikePost likes or unlikes a post and returns the new like count.
func (c *Client) LikePost(id uint, action Toggle) (int, error) {
	if action != Like && action != Unlike {
		return 0, fmt.Errorf("invalid like action %q", action)
	}
	data, err := c.post(fmt.Sprintf("/api/posts/%d/like", id), map[string]string{"action": string(action)})
	if err != nil {
		return 0, err
	}
	resp, err := decode[struct {
		Likes int `json:"likes"`
	}](data)
	if err != nil {
		return 0, err
	}
	return resp.Likes, nil
}

// FavoritePost favorites or unfavorites a post and returns the new count.
func (c *Client) FavoritePost(id uint, action Toggle) (int, error) {
	if action != Favorite && action != Unfavorite {
		return 0, fmt.Errorf("invalid favorite action %q", action)
	}
	data, err := c.post(fmt.Sprintf("/api/posts/%d/favorite", id), map[string]string{"action": string(action)})
	if err != nil {
		return 0, err
	}
	resp, err := decode[struct {
		Favorites int `json:"favorites"`
	}](data)
	if err != nil {
		return 0, err
	}
	return resp.Favorites, nil
}

// PostURL is the public page of a post, as shared.
func (c *Client) PostURL(id uint) string {
	return fmt.Sprintf("%s/post-%d-1", c.baseURL, id)
}
