// Package client provides an HTTP client for the remote visitor-records API.
package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tuyishime/visitdesk/internal/visitor"
)

// requestTimeout bounds every call to the records service.
const requestTimeout = 10 * time.Second

// ErrNetwork marks failures where no response was received at all
// (timeout, refused connection, DNS). Callers show a generic
// "check your connection" message and do not retry automatically.
var ErrNetwork = errors.New("no response from server")

// ServerError is a non-2xx response from the records service.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server error: %s", http.StatusText(e.StatusCode))
}

// Client is an HTTP client for the visitor-records API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client against the given base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// ListVisitors returns every visitor record the service holds.
func (c *Client) ListVisitors() ([]*visitor.Visitor, error) {
	var visitors []*visitor.Visitor
	if err := c.get("/api/visitors", &visitors); err != nil {
		return nil, err
	}
	return visitors, nil
}

// SearchVisitors returns visitors whose name matches on the server side.
func (c *Client) SearchVisitors(name string) ([]*visitor.Visitor, error) {
	var visitors []*visitor.Visitor
	path := "/api/visitors/search?name=" + url.QueryEscape(name)
	if err := c.get(path, &visitors); err != nil {
		return nil, err
	}
	return visitors, nil
}

// RegisterVisitor signs in a new visitor and returns the created record.
func (c *Client) RegisterVisitor(reg visitor.Registration) (*visitor.Visitor, error) {
	var v visitor.Visitor
	if err := c.post("/api/visitors/register", reg, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// UpdateVisitor applies partial changes to a record and returns the result.
// Changes maps JSON field names to their new values; departureTime is never
// cleared through this path.
func (c *Client) UpdateVisitor(id int64, changes map[string]string) (*visitor.Visitor, error) {
	var v visitor.Visitor
	if err := c.put(fmt.Sprintf("/api/visitors/%d", id), changes, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// RecordDeparture marks a visitor as departed at the current server time
// and returns the updated record.
func (c *Client) RecordDeparture(id int64) (*visitor.Visitor, error) {
	var v visitor.Visitor
	if err := c.put(fmt.Sprintf("/api/visitors/%d/departure", id), nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// get performs a GET request and decodes the response.
func (c *Client) get(path string, result interface{}) error {
	req, err := http.NewRequest("GET", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, result)
}

// post performs a POST request with a JSON body and decodes the response.
func (c *Client) post(path string, body interface{}, result interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequest("POST", c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, result)
}

// put performs a PUT request with an optional JSON body and decodes the response.
func (c *Client) put(path string, body interface{}, result interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest("PUT", c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req, result)
}

// do executes an HTTP request and classifies failures: transport failures
// wrap ErrNetwork, non-2xx responses become a *ServerError carrying the
// message from the body when one is present.
func (c *Client) do(req *http.Request, result interface{}) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			fmt.Printf("warning: closing response body: %v\n", cerr)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		srvErr := &ServerError{StatusCode: resp.StatusCode}
		var errResp struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if json.Unmarshal(respBody, &errResp) == nil {
			if errResp.Error != "" {
				srvErr.Message = errResp.Error
			} else if errResp.Message != "" {
				srvErr.Message = errResp.Message
			}
		}
		return srvErr
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
