package marketplace

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"talentbridge.com/oauth"
	"talentbridge.com/shared"
)

// API is the subset of the marketplace SDK this service consumes. Controllers
// take it as an interface so tests can swap in a fake.
type API interface {
	ShowTransaction(id string) (*Transaction, error)
	UpdateTransactionMetadata(id string, metadata map[string]interface{}) error
	Transition(id string, transition string) error
	ShowUser(id string) (*User, error)
	ShowListing(id string) (*Listing, error)
}

// APIError carries the upstream HTTP status so handlers can map it through.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("marketplace API error %d: %s", e.StatusCode, e.Body)
}

// StatusOf translates a marketplace call failure into an HTTP status for the
// caller: the upstream status if we got one, 502 otherwise.
func StatusOf(err error) int {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.StatusCode
	}
	return http.StatusBadGateway
}

type Client struct {
	baseURL string
	http    *http.Client
	auth    *oauth.Client
}

func NewClient() *Client {
	return &Client{
		baseURL: strings.TrimRight(os.Getenv("MARKETPLACE_BASE_URL"), "/"),
		http:    shared.HttpClient(),
		auth: oauth.NewClient(oauth.ClientConfig{
			TokenURL:     os.Getenv("MARKETPLACE_TOKEN_URL"),
			ClientID:     os.Getenv("MARKETPLACE_CLIENT_ID"),
			ClientSecret: os.Getenv("MARKETPLACE_CLIENT_SECRET"),
			Scopes:       []string{"integ"},
		}),
	}
}

func (c *Client) doRequest(method, path string, payload interface{}, out interface{}) error {
	var bodyReader io.Reader
	if payload != nil {
		bodyBytes, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	authHeader, err := c.auth.GetAuthorizationHeader()
	if err != nil {
		return fmt.Errorf("marketplace auth failed: %w", err)
	}
	req.Header.Set("Authorization", authHeader)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) ShowTransaction(id string) (*Transaction, error) {
	var tx Transaction
	if err := c.doRequest("GET", "/transactions/"+id, nil, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// UpdateTransactionMetadata writes the full metadata map back to the
// marketplace. The sidecar flags are read-modify-write with no version token,
// so the last writer wins.
func (c *Client) UpdateTransactionMetadata(id string, metadata map[string]interface{}) error {
	payload := map[string]interface{}{"metadata": metadata}
	return c.doRequest("POST", "/transactions/"+id+"/metadata", payload, nil)
}

func (c *Client) Transition(id string, transition string) error {
	payload := map[string]interface{}{"transition": transition}
	return c.doRequest("POST", "/transactions/"+id+"/transition", payload, nil)
}

func (c *Client) ShowUser(id string) (*User, error) {
	var user User
	if err := c.doRequest("GET", "/users/"+id, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) ShowListing(id string) (*Listing, error) {
	var listing Listing
	if err := c.doRequest("GET", "/listings/"+id, nil, &listing); err != nil {
		return nil, err
	}
	return &listing, nil
}
