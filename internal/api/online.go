package api

import (
	"encoding/json"
	"fmt"
)

// OnlineCount calls /api/online/count and returns the number of users online.
func (c *Client) OnlineCount() (int, error) {
	data, err := c.get("/api/online/count")
	if err != nil {
		return 0, err
	}

	var payload struct {
		OnlineCount int `json:"online_count"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}
	return payload.OnlineCount, nil
}
