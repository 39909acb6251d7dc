package onedrive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/Tiliavir/typed-time-tracker/internal/model"
	"github.com/Tiliavir/typed-time-tracker/internal/storage"
)

const graphBaseURL = "https://graph.microsoft.com/v1.0"

// Client reads and writes the tracker document in the OneDrive app folder.
type Client struct {
	httpClient *http.Client
	baseURL    string
	fileName   string
}

// NewClient creates a client for fileName using an authorised HTTP client.
func NewClient(httpClient *http.Client, fileName string) *Client {
	return &Client{httpClient: httpClient, baseURL: graphBaseURL, fileName: fileName}
}

// WithBaseURL points the client at another Graph endpoint.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

func (c *Client) contentURL() string {
	return fmt.Sprintf("%s/me/drive/special/approot:/%s:/content", c.baseURL, url.PathEscape(c.fileName))
}

func (c *Client) do(req *http.Request) (int, []byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("graph API request failed: %w", err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return 0, nil, fmt.Errorf("reading response body: %w", err)
	}
	return resp.StatusCode, body, nil
}

// Download fetches and validates the remote document. found is false when
// the app folder holds no document yet.
func (c *Client) Download(ctx context.Context) (doc model.Document, found bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.contentURL(), nil)
	if err != nil {
		return model.Document{}, false, fmt.Errorf("creating request: %w", err)
	}
	status, body, err := c.do(req)
	if err != nil {
		return model.Document{}, false, err
	}
	if status == http.StatusNotFound {
		return model.Document{}, false, nil
	}
	if status != http.StatusOK {
		return model.Document{}, false, fmt.Errorf("graph API error %d: %s", status, string(body))
	}
	doc, err = storage.Decode(body)
	if err != nil {
		return model.Document{}, false, fmt.Errorf("remote document: %w", err)
	}
	return doc, true, nil
}

// Upload replaces the remote document.
func (c *Client) Upload(ctx context.Context, doc model.Document) error {
	data, err := storage.Encode(doc)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.contentURL(), bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	status, body, err := c.do(req)
	if err != nil {
		return err
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return fmt.Errorf("graph API error %d: %s", status, string(body))
	}
	return nil
}

// User is the signed-in account.
type User struct {
	DisplayName       string `json:"displayName"`
	UserPrincipalName string `json:"userPrincipalName"`
}

// Me returns the signed-in account.
func (c *Client) Me(ctx context.Context) (User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/me", nil)
	if err != nil {
		return User{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	status, body, err := c.do(req)
	if err != nil {
		return User{}, err
	}
	if status != http.StatusOK {
		return User{}, fmt.Errorf("graph API error %d: %s", status, string(body))
	}
	var u User
	if err := json.Unmarshal(body, &u); err != nil {
		return User{}, fmt.Errorf("decoding graph response: %w", err)
	}
	return u, nil
}
