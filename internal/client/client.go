// Package client is a thin HTTP SDK for the bookmarker API.
package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/models"
)

type (
	// APIError is returned for every non-2xx response.
	APIError struct {
		StatusCode int
		Message    string
	}

	Client struct {
		http  *resty.Client
		token string
	}
)

func (e *APIError) Error() string {
	return fmt.Sprintf("bookmarker: %d %s", e.StatusCode, e.Message)
}

func New(baseURL string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Content-Type", "application/json"),
	}
}

// NewWithHTTPClient lets tests route requests through an in-process transport.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{
		http: resty.NewWithClient(hc).
			SetBaseURL(baseURL).
			SetHeader("Content-Type", "application/json"),
	}
}

// WithToken returns a copy of the client that authenticates as token.
func (c *Client) WithToken(token string) *Client {
	return &Client{http: c.http, token: token}
}

func (c *Client) Token() string {
	return c.token
}

func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/ping", nil, nil)
	return err
}

// Signup registers a user and returns a client authenticated as them.
func (c *Client) Signup(ctx context.Context, email, password string) (*Client, error) {
	return c.authenticate(ctx, "/auth/signup", email, password)
}

func (c *Client) Signin(ctx context.Context, email, password string) (*Client, error) {
	return c.authenticate(ctx, "/auth/signin", email, password)
}

func (c *Client) Signout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/signout", nil, nil)
	return err
}

func (c *Client) Me(ctx context.Context) (*models.UserResp, error) {
	out := &models.UserResp{}
	if _, err := c.do(ctx, http.MethodGet, "/users/me", nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) EditMe(ctx context.Context, req models.UserReq) (*models.UserResp, error) {
	out := &models.UserResp{}
	if _, err := c.do(ctx, http.MethodPatch, "/users", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListBookmarks(ctx context.Context) ([]models.BookmarkResp, error) {
	out := []models.BookmarkResp{}
	if _, err := c.do(ctx, http.MethodGet, "/bookmarks", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetBookmark returns nil without an error when the bookmark is absent.
func (c *Client) GetBookmark(ctx context.Context, id uint64) (*models.BookmarkResp, error) {
	var out *models.BookmarkResp
	if _, err := c.do(ctx, http.MethodGet, bookmarkPath(id), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateBookmark(ctx context.Context, req models.BookmarkCreateReq) (*models.BookmarkResp, error) {
	out := &models.BookmarkResp{}
	if _, err := c.do(ctx, http.MethodPost, "/bookmarks", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) EditBookmark(ctx context.Context, id uint64, req models.BookmarkEditReq) (*models.BookmarkResp, error) {
	out := &models.BookmarkResp{}
	if _, err := c.do(ctx, http.MethodPatch, bookmarkPath(id), req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeleteBookmark(ctx context.Context, id uint64) error {
	_, err := c.do(ctx, http.MethodDelete, bookmarkPath(id), nil, nil)
	return err
}

func (c *Client) authenticate(ctx context.Context, path, email, password string) (*Client, error) {
	out := &models.AuthResp{}
	req := models.AuthReq{Email: email, Password: password}
	if _, err := c.do(ctx, http.MethodPost, path, req, out); err != nil {
		return nil, err
	}
	return c.WithToken(out.AccessToken), nil
}

func (c *Client) do(ctx context.Context, method, path string, body, result interface{}) (*resty.Response, error) {
	r := c.http.R().
		SetContext(ctx).
		SetError(&models.ErrorResp{})
	if c.token != "" {
		r.SetAuthToken(c.token)
	}
	if body != nil {
		r.SetBody(body)
	}
	if result != nil {
		r.SetResult(result)
	}

	resp, err := r.Execute(method, path)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		apiErr := &APIError{StatusCode: resp.StatusCode(), Message: http.StatusText(resp.StatusCode())}
		if e, ok := resp.Error().(*models.ErrorResp); ok && e.Message != "" {
			apiErr.Message = e.Message
		}
		return resp, apiErr
	}
	return resp, nil
}

func bookmarkPath(id uint64) string {
	return "/bookmarks/" + strconv.FormatUint(id, 10)
}
