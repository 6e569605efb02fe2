package api

import (
	"fmt"
	"net/url"
	"strconv"
)

// ListComments returns the comments on a post.
func (c *Client) ListComments(postID uint) ([]Comment, error) {
	path := buildQuery("/api/comments", url.Values{"post_id": {strconv.FormatUint(uint64(postID), 10)}})
	data, err := c.get(path)
	if err != nil {
		return nil, err
	}
	resp, err := decode[struct {
		Data []Comment `json:"data"`
	}](data)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// CreateComment posts a comment or, with ParentID set, a reply.
func (c *Client) CreateComment(req CreateCommentRequest) (*Comment, error) {
	data, err := c.post("/api/comments", req)
	if err != nil {
		return nil, err
	}
	resp, err := decode[struct {
		Data Comment `json:"data"`
	}](data)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// LikeComment likes or unlikes a comment and returns the new like count.
func (c *Client) LikeComment(id uint, action Toggle) (int, error) {
	if action != Like && action != Unlike {
		return 0, fmt.Errorf("invalid like action %q", action)
	}
	data, err := c.post(fmt.Sprintf("/api/comments/%d/like", id), map[string]string{"action": string(action)})
	if err != nil {
		return 0, err
	}
	resp, err := decode[struct {
		Data struct {
			LikeCount int `json:"like_count"`
		} `json:"data"`
	}](data)
	if err != nil {
		return 0, err
	}
	return resp.Data.LikeCount, nil
}
