package api

import (
	"net/url"
)

// Login posts the login form. On success the session cookie is kept by the
// client and also returned in Session.Cookie so callers can persist it.
func (c *Client) Login(email, password string, remember bool) (*Session, error) {
	form := url.Values{}
	form.Set("email", email)
	form.Set("password", password)
	if remember {
		form.Set("remember", "on")
	}

	data, _, err := c.doForm("/login", form)
	if err != nil {
		return nil, err
	}

	resp, err := decode[struct {
		Status  string  `json:"status"`
		Message string  `json:"message"`
		Data    Session `json:"data"`
	}](data)
	if err != nil {
		return nil, err
	}
	if resp.Status != "success" {
		return nil, &ServerError{Message: nonEmpty(resp.Message, "login failed")}
	}
	sess := resp.Data
	sess.Cookie = c.Session()
	return &sess, nil
}

// Register posts the registration form and returns the server's message.
func (c *Client) Register(reg Registration) (string, error) {
	form := url.Values{}
	form.Set("username", reg.Username)
	form.Set("email", reg.Email)
	form.Set("password", reg.Password)
	form.Set("confirmPassword", reg.ConfirmPassword)
	if reg.AgreeTerms {
		form.Set("agreeTerms", "on")
	}

	data, _, err := c.doForm("/register", form)
	if err != nil {
		return "", err
	}

	resp, err := decode[envelope](data)
	if err != nil {
		return "", err
	}
	if resp.Status != "success" {
		return "", &ServerError{Message: nonEmpty(resp.Message, "registration failed")}
	}
	return resp.Message, nil
}

// ForgotPassword requests a password-reset email.
func (c *Client) ForgotPassword(email string) (string, error) {
	data, err := c.post("/api/auth/forgot-password", map[string]string{"email": email})
	if err != nil {
		return "", err
	}
	resp, err := decode[envelope](data)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Logout drops the session on the server and in the cookie jar.
func (c *Client) Logout() error {
	_, err := c.get("/logout")
	c.SetSession("")
	return err
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
