package httpclient

import (
	"io"
	"net/http"
	"time"
)

// Client is the outbound HTTP surface the notify dispatcher depends on.
// *http.Client satisfies it, so tests can hand in an httptest server's
// client or any stub.
type Client interface {
	Post(url, contentType string, body io.Reader) (*http.Response, error)
	Get(url string) (*http.Response, error)
	Do(req *http.Request) (*http.Response, error)
}

// StandardHTTPClient wraps net/http with a bounded timeout. Notifier calls
// sit on the connection-request path, so a hung dispatch must not hold the
// submission forever.
type StandardHTTPClient struct {
	client *http.Client
}

// NewStandardClient returns the production client used for notifier dispatch.
func NewStandardClient() Client {
	return &StandardHTTPClient{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *StandardHTTPClient) Post(url, contentType string, body io.Reader) (*http.Response, error) {
	return c.client.Post(url, contentType, body)
}

func (c *StandardHTTPClient) Get(url string) (*http.Response, error) {
	return c.client.Get(url)
}

func (c *StandardHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return c.client.Do(req)
}
