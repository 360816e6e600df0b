package utils

import (
	"github.com/go-resty/resty/v2"
)

// HTTPClient wraps resty.Client for the outbound adapters (blob mirrors,
// key servers). It embeds *resty.Client so every request-building method
// is available directly, while leaving room for shared client behavior
// later without touching the adapters.
//
// Example usage:
//
//	client := utils.NewHTTPClient()
//	resp, err := client.R().Get(mirrorURL + "/v1/blobs/" + id.String())
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a fresh HTTPClient with a default-configured
// resty.Client. Each call yields an independent client with its own
// connection pool, so the mirror adapter and the key-server adapter never
// share transport state.
func NewHTTPClient() *HTTPClient {
	return &HTTPClient{Client: resty.New()}
}
