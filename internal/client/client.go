// Package client provides a Go client for the stance API. The session lives
// in the client's cookie jar.
package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/alphabot-ai/stance/internal/model"
	"github.com/alphabot-ai/stance/internal/view"
)

// Client is a stance API client.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// Error is a non-2xx answer from the server.
type Error struct {
	Status  int
	Kind    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, e.Kind, e.Message)
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}

// New creates a client with an empty cookie jar.
func New(baseURL string) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second, Jar: jar},
	}
}

// do sends body as JSON and decodes a 2xx answer into out when out is not
// nil.
func (c *Client) do(method, path string, body, out any) error {
	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return err
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, bodyReader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var e struct {
			Error string `json:"error"`
			Kind  string `json:"kind"`
		}
		_ = json.Unmarshal(respBody, &e)
		return &Error{Status: resp.StatusCode, Kind: e.Kind, Message: e.Error}
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(respBody, out)
}

// Register creates an account. The client stays logged out.
func (c *Client) Register(username, password string) (view.User, error) {
	var result struct {
		User view.User `json:"user"`
	}
	err := c.do(http.MethodPost, "/api/users", map[string]string{"username": username, "password": password}, &result)
	return result.User, err
}

func (c *Client) Login(username, password string) error {
	return c.do(http.MethodPost, "/api/login", map[string]string{"username": username, "password": password}, nil)
}

// RegisterAndLogin registers username, tolerating an existing account, and
// logs in.
func (c *Client) RegisterAndLogin(username, password string) error {
	if _, err := c.Register(username, password); err != nil && StatusOf(err) != http.StatusConflict {
		return fmt.Errorf("register: %w", err)
	}
	return c.Login(username, password)
}

func (c *Client) Logout() error {
	return c.do(http.MethodPost, "/api/logout", nil, nil)
}

// Me returns the logged in user.
func (c *Client) Me() (view.User, error) {
	var user view.User
	err := c.do(http.MethodGet, "/api/session", nil, &user)
	return user, err
}

func (c *Client) CreateTopic(title, description string) (view.Topic, error) {
	var result struct {
		Topic view.Topic `json:"topic"`
	}
	err := c.do(http.MethodPost, "/api/topic", map[string]string{"title": title, "description": description}, &result)
	return result.Topic, err
}

// Topics lists topics, filtered by a case-insensitive title substring when
// search is not empty.
func (c *Client) Topics(search string) ([]view.Topic, error) {
	path := "/api/topics"
	if search != "" {
		path += "?search=" + url.QueryEscape(search)
	}
	var topics []view.Topic
	err := c.do(http.MethodGet, path, nil, &topics)
	return topics, err
}

func (c *Client) SortTopics(sort string) ([]view.Topic, error) {
	var topics []view.Topic
	err := c.do(http.MethodGet, "/api/topics/sort?sort="+url.QueryEscape(sort), nil, &topics)
	return topics, err
}

func (c *Client) DeleteTopic(title string) error {
	return c.do(http.MethodDelete, "/api/topic/"+url.PathEscape(title), nil, nil)
}

func (c *Client) RespondToTopic(topic, title, content string) (view.Response, error) {
	return c.respond("/api/responses/topic/"+url.PathEscape(topic), title, content)
}

func (c *Client) RespondToResponse(id, title, content string) (view.Response, error) {
	return c.respond("/api/responses/response/"+url.PathEscape(id), title, content)
}

func (c *Client) respond(path, title, content string) (view.Response, error) {
	var result struct {
		Response view.Response `json:"response"`
	}
	err := c.do(http.MethodPost, path, map[string]string{"title": title, "content": content}, &result)
	return result.Response, err
}

func (c *Client) ResponsesToTopic(topic string) ([]view.Response, error) {
	var responses []view.Response
	err := c.do(http.MethodGet, "/api/responses/topic?topic="+url.QueryEscape(topic), nil, &responses)
	return responses, err
}

func (c *Client) SortResponses(topic, sort string) ([]view.Response, error) {
	var responses []view.Response
	path := fmt.Sprintf("/api/responses/topic/%s/sort/%s", url.PathEscape(topic), url.PathEscape(sort))
	err := c.do(http.MethodGet, path, nil, &responses)
	return responses, err
}

func (c *Client) TakeSide(topic string, degree model.Degree) (view.Side, error) {
	var result struct {
		Side view.Side `json:"side"`
	}
	err := c.do(http.MethodPost, "/api/side/new/"+url.PathEscape(topic), map[string]string{"degree": string(degree)}, &result)
	return result.Side, err
}

func (c *Client) ChangeSide(topic string, degree model.Degree) error {
	return c.do(http.MethodPatch, "/api/side/update/"+url.PathEscape(topic), map[string]string{"degree": string(degree)}, nil)
}

func (c *Client) CreateLabel(kind model.Kind, title string) (view.Label, error) {
	var result struct {
		Label view.Label `json:"label"`
	}
	err := c.do(http.MethodPost, "/api/label/"+string(kind), map[string]string{"title": title}, &result)
	return result.Label, err
}

// AddLabel attaches label to target: a topic title or a response id
// depending on kind.
func (c *Client) AddLabel(label string, kind model.Kind, target string) error {
	path := fmt.Sprintf("/api/label/%s/add/%s/%s", url.PathEscape(label), kind, url.PathEscape(target))
	return c.do(http.MethodPatch, path, nil, nil)
}

func (c *Client) Upvote(response string) error {
	return c.do(http.MethodPatch, "/api/vote/upvote/"+url.PathEscape(response), nil, nil)
}

func (c *Client) Downvote(response string) error {
	return c.do(http.MethodPatch, "/api/vote/downvote/"+url.PathEscape(response), nil, nil)
}

func (c *Client) Unvote(response string) error {
	return c.do(http.MethodPatch, "/api/vote/unvote/"+url.PathEscape(response), nil, nil)
}

// VoteCount returns upvotes minus downvotes.
func (c *Client) VoteCount(response string) (int, error) {
	var result struct {
		Count int `json:"count"`
	}
	err := c.do(http.MethodGet, "/api/vote/count?id="+url.QueryEscape(response), nil, &result)
	return result.Count, err
}

func (c *Client) SendFriendRequest(to string) error {
	return c.do(http.MethodPost, "/api/friend/requests/"+url.PathEscape(to), nil, nil)
}

func (c *Client) AcceptFriendRequest(from string) error {
	return c.do(http.MethodPut, "/api/friend/accept/"+url.PathEscape(from), nil, nil)
}

// Friends lists the usernames of the caller's friends.
func (c *Client) Friends() ([]string, error) {
	var friends []string
	err := c.do(http.MethodGet, "/api/friends", nil, &friends)
	return friends, err
}
