package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

// SessionCookie is the name of the forum's session cookie.
const SessionCookie = "mysession"

// Client wraps HTTP calls to the forum's JSON endpoints. The session cookie
// set by /login is kept in a cookie jar and sent on later requests.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new API client carrying an optional session value.
func NewClient(baseURL, session string, timeout ...time.Duration) *Client {
	httpTimeout := 30 * time.Second
	if len(timeout) > 0 && timeout[0] > 0 {
		httpTimeout = timeout[0]
	}
	jar, _ := cookiejar.New(nil)
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: httpTimeout,
			Jar:     jar,
		},
	}
	c.SetSession(session)
	return c
}

// BaseURL returns the server root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetSession replaces the session cookie used for subsequent requests.
func (c *Client) SetSession(session string) {
	u, err := url.Parse(c.baseURL + "/")
	if err != nil || c.httpClient.Jar == nil {
		return
	}
	cookie := &http.Cookie{Name: SessionCookie, Value: session, Path: "/"}
	if session == "" {
		cookie.MaxAge = -1
	}
	c.httpClient.Jar.SetCookies(u, []*http.Cookie{cookie})
}

// Session returns the current session cookie value, if any.
func (c *Client) Session() string {
	u, err := url.Parse(c.baseURL + "/")
	if err != nil || c.httpClient.Jar == nil {
		return ""
	}
	for _, ck := range c.httpClient.Jar.Cookies(u) {
		if ck.Name == SessionCookie {
			return ck.Value
		}
	}
	return ""
}

// WithTimeout clones the client with a different HTTP timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	return NewClient(c.baseURL, c.Session(), timeout)
}

// do executes a JSON request and returns the raw response body.
func (c *Client) do(method, path string, body any) ([]byte, int, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}
	return c.send(method, path, reqBody, "application/json")
}

// doForm posts an urlencoded form, as the server-rendered auth pages do.
func (c *Client) doForm(path string, form url.Values) ([]byte, int, error) {
	return c.send(http.MethodPost, path, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
}

func (c *Client) send(method, path string, reqBody io.Reader, contentType string) ([]byte, int, error) {
	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, &TransportError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, &TransportError{Op: "read response", Err: err}
	}

	env, isJSON := parseEnvelope(respBody)
	if resp.StatusCode >= 400 && !isJSON {
		return nil, resp.StatusCode, &TransportError{Op: method + " " + path, Err: fmt.Errorf("HTTP %d without a JSON body", resp.StatusCode)}
	}
	if env.failed() || resp.StatusCode >= 400 {
		return nil, resp.StatusCode, &ServerError{StatusCode: resp.StatusCode, Message: env.reason(resp.StatusCode)}
	}

	return respBody, resp.StatusCode, nil
}

// get performs a GET request.
func (c *Client) get(path string) ([]byte, error) {
	body, _, err := c.do(http.MethodGet, path, nil)
	return body, err
}

// post performs a POST request.
func (c *Client) post(path string, body any) ([]byte, error) {
	b, _, err := c.do(http.MethodPost, path, body)
	return b, err
}

// put performs a PUT request.
func (c *Client) put(path string, body any) ([]byte, error) {
	b, _, err := c.do(http.MethodPut, path, body)
	return b, err
}

// decode unmarshals a response body into T.
func decode[T any](data []byte) (*T, error) {
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}

// buildQuery appends query params to a path.
func buildQuery(path string, params url.Values) string {
	q := url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			if v != "" {
				q.Add(k, v)
			}
		}
	}
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

// parseEnvelope decodes the discriminant fields of a JSON object body.
// The second result is false when the body is not a JSON object.
func parseEnvelope(body []byte) (envelope, bool) {
	var env envelope
	err := json.Unmarshal(body, &env)
	return env, err == nil
}

// reason picks the most specific message a failed response carries.
func (e envelope) reason(status int) string {
	for _, v := range []any{e.Message, e.Error, e.Detail} {
		if msg := errorText(v); msg != "" {
			return msg
		}
	}
	if status < 400 {
		return "request failed"
	}
	return fmt.Sprintf("HTTP %d", status)
}

// errorText flattens the shapes the server uses for errors: a bare string,
// {"code", "message"}, or an object wrapping another "error".
func errorText(v any) string {
	switch v := v.(type) {
	case string:
		return strings.TrimSpace(v)
	case map[string]any:
		if nested := errorText(v["error"]); nested != "" {
			return nested
		}
		code, _ := v["code"].(string)
		msg, _ := v["message"].(string)
		parts := make([]string, 0, 2)
		for _, p := range []string{code, msg} {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		return strings.Join(parts, ": ")
	}
	return ""
}
