// Package client is a typed HTTP client for the articles API.
package client

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/KostasSpiridopoulos/BackendAssignment/internal/articlerequest"
	"github.com/KostasSpiridopoulos/BackendAssignment/internal/model"
)

type Client struct {
	http.Client
	Addr string

	// Token is sent as a bearer token when set. Login sets it.
	Token string
}

// APIError is a non-2xx response.
type APIError struct {
	StatusCode int
	Status     string `json:"status"`
	Message    string `json:"error"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Status, e.Message)
	}
	return fmt.Sprintf("%d %s", e.StatusCode, e.Status)
}

func (c *Client) Ping(ctx context.Context) (string, error) {
	resp, err := c.send(ctx, http.MethodGet, "/ping", nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

func (c *Client) Register(ctx context.Context, username, password string) (model.User, error) {
	var u model.User
	err := c.doJSON(ctx, http.MethodPost, "/auth", map[string]string{"username": username, "password": password}, &u)
	return u, err
}

// Login exchanges credentials for a token and keeps it for later calls.
func (c *Client) Login(ctx context.Context, username, password string) error {
	var tok struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/token", map[string]string{"username": username, "password": password}, &tok); err != nil {
		return err
	}
	c.Token = tok.AccessToken

	return nil
}

func (c *Client) CreateAuthor(ctx context.Context, name string) (model.Author, error) {
	var a model.Author
	err := c.doJSON(ctx, http.MethodPost, "/authors", articlerequest.NameRequest{Name: name}, &a)
	return a, err
}

func (c *Client) CreateTag(ctx context.Context, name string) (model.Tag, error) {
	var t model.Tag
	err := c.doJSON(ctx, http.MethodPost, "/tags", articlerequest.NameRequest{Name: name}, &t)
	return t, err
}

func (c *Client) CreateArticle(ctx context.Context, req articlerequest.ArticleRequest) (model.Article, error) {
	var a model.Article
	err := c.doJSON(ctx, http.MethodPost, "/articles", req, &a)
	return a, err
}

func (c *Client) GetArticle(ctx context.Context, id int64) (model.Article, error) {
	var a model.Article
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/articles/%d", id), nil, &a)
	return a, err
}

func (c *Client) UpdateArticle(ctx context.Context, id int64, req articlerequest.ArticleRequest) (model.Article, error) {
	var a model.Article
	err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/articles/%d", id), req, &a)
	return a, err
}

func (c *Client) DeleteArticle(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/articles/%d", id), nil, nil)
}

// SearchArticles runs a filtered query; see the year, month, authors, tags,
// keywords and page parameters.
func (c *Client) SearchArticles(ctx context.Context, query url.Values) ([]model.Article, error) {
	var articles []model.Article
	err := c.doJSON(ctx, http.MethodGet, "/articles/search?"+query.Encode(), nil, &articles)
	return articles, err
}

// ExportArticles downloads the CSV export of a filtered query, header row included.
func (c *Client) ExportArticles(ctx context.Context, query url.Values) ([][]string, error) {
	resp, err := c.send(ctx, http.MethodGet, "/articles/search.csv?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return csv.NewReader(resp.Body).ReadAll()
}

func (c *Client) AddComment(ctx context.Context, articleID int64, content string) (model.Comment, error) {
	var cm model.Comment
	err := c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/articles/%d/comments", articleID), map[string]string{"content": content}, &cm)
	return cm, err
}

func (c *Client) ListComments(ctx context.Context, articleID int64) ([]model.Comment, error) {
	var comments []model.Comment
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/articles/%d/comments", articleID), nil, &comments)
	return comments, err
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}

	return nil
}

// send returns an *APIError for non-2xx responses, with the body consumed.
func (c *Client) send(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(c.Addr, "/")+path, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil || apiErr.Status == "" {
			apiErr.Status = http.StatusText(resp.StatusCode)
		}
		return nil, apiErr
	}

	return resp, nil
}
