// Package bluesky is a minimal client for posting to Bluesky with a handle
// and app password. Only the two XRPC calls the poster needs are
// implemented: com.atproto.server.createSession and
// com.atproto.repo.createRecord.
package bluesky

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// DefaultHost is the public Bluesky PDS.
const DefaultHost = "https://bsky.social"

// httpClient is a shared HTTP client with a timeout for all requests.
var httpClient = &http.Client{Timeout: 15 * time.Second}

// Client talks to one Bluesky PDS. Call Login before posting; publishing
// without a session is a usage error, not a silent no-op.
type Client struct {
	Host string

	handle   string
	password string

	// session state, populated by Login
	accessJwt string
	did       string
}

// NewClient configures a client from the BLUESKY_HANDLE and
// BLUESKY_PASSWORD environment variables.
func NewClient() (*Client, error) {
	handle := os.Getenv("BLUESKY_HANDLE")
	password := os.Getenv("BLUESKY_PASSWORD")
	if handle == "" || password == "" {
		return nil, fmt.Errorf("missing required environment variables: BLUESKY_HANDLE, BLUESKY_PASSWORD")
	}
	return NewClientWithCredentials(handle, password)
}

// NewClientWithCredentials configures a client with the provided handle and
// app password.
func NewClientWithCredentials(handle, password string) (*Client, error) {
	if handle == "" || password == "" {
		return nil, fmt.Errorf("handle and password must both be provided")
	}
	return &Client{Host: DefaultHost, handle: handle, password: password}, nil
}

type createSessionResponse struct {
	AccessJwt string `json:"accessJwt"`
	DID       string `json:"did"`
	Handle    string `json:"handle"`
}

// Login creates a session with the PDS using the configured credentials.
func (c *Client) Login() error {
	body, err := json.Marshal(map[string]string{
		"identifier": c.handle,
		"password":   c.password,
	})
	if err != nil {
		return err
	}

	var session createSessionResponse
	if err := c.xrpc("com.atproto.server.createSession", body, "", &session); err != nil {
		return fmt.Errorf("bluesky authentication failed: %w", err)
	}
	c.accessJwt = session.AccessJwt
	c.did = session.DID

	fmt.Printf("Successfully authenticated with Bluesky as %s\n", session.Handle)
	return nil
}

// LoggedIn reports whether a Login has succeeded on this client.
func (c *Client) LoggedIn() bool {
	return c.accessJwt != ""
}

type createRecordResponse struct {
	URI string `json:"uri"`
	CID string `json:"cid"`
}

// Post publishes a single text post and returns its record URI.
func (c *Client) Post(text string) (string, error) {
	if !c.LoggedIn() {
		return "", fmt.Errorf("not authenticated with Bluesky, call Login first")
	}

	body, err := json.Marshal(map[string]interface{}{
		"repo":       c.did,
		"collection": "app.bsky.feed.post",
		"record": map[string]string{
			"$type":     "app.bsky.feed.post",
			"text":      text,
			"createdAt": time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", err
	}

	var created createRecordResponse
	if err := c.xrpc("com.atproto.repo.createRecord", body, c.accessJwt, &created); err != nil {
		return "", fmt.Errorf("error posting to Bluesky: %w", err)
	}

	fmt.Printf("Successfully posted to Bluesky: %s\n", created.URI)
	return created.URI, nil
}

// xrpc issues one JSON POST against the PDS and decodes the response.
func (c *Client) xrpc(method string, body []byte, token string, out interface{}) error {
	req, err := http.NewRequest(http.MethodPost, c.Host+"/xrpc/"+method, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("%s returned %s: %s", method, res.Status, msg)
	}
	return json.NewDecoder(res.Body).Decode(out)
}
