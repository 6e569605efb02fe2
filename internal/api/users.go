package api

// UpdateProfile saves the profile fields and returns the server's message.
func (c *Client) UpdateProfile(p ProfileUpdate) (string, error) {
	data, err := c.put("/api/users/profile", p)
	if err != nil {
		return "", err
	}
	resp, err := decode[envelope](data)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// ChangePassword replaces the account password.
func (c *Client) ChangePassword(p PasswordChange) (string, error) {
	data, err := c.put("/api/users/password", p)
	if err != nil {
		return "", err
	}
	resp, err := decode[envelope](data)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}
