package htclient

import (
	"io"
	"net/http"

	"github.com/open-control-systems/servus/components/http/httransport"
	"github.com/open-control-systems/servus/components/system/sysnet"
)

// HttpClient is a standard HTTP client wrapper to simplify response reading.
type HttpClient struct {
	http.Client
}

// NewDefaultClient returns a general purpose HTTP client.
func NewDefaultClient() *HttpClient {
	return &HttpClient{}
}

// NewResolveClient returns HTTP client resolving host names with resolver.
func NewResolveClient(resolver sysnet.Resolver) *HttpClient {
	return &HttpClient{
		Client: http.Client{
			Transport: httransport.NewResolveRoundTripper(resolver, http.DefaultTransport),
		},
	}
}

// Do sends a request, receives a response, and fully reads the response body.
func (c *HttpClient) Do(req *http.Request) (*http.Response, []byte, error) {
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}

	return resp, body, nil
}
