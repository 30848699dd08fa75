package shared

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// NewOptimizedHTTPClient creates an HTTP client with connection pooling and
// a hard overall timeout. The upstream history API is known to hang; the
// timeout bounds every fetch so a stuck upstream degrades to a failure
// response instead of tying up a request.
func NewOptimizedHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,

			DisableKeepAlives: false,

			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: 10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,

			DisableCompression: false,
		},
	}

	logrus.WithFields(logrus.Fields{
		"component": "HTTPClient",
		"timeout":   timeout,
	}).Debug("Created optimized HTTP client")

	return client
}

// SetAPIRequestHeaders configures standard headers for upstream API requests
func SetAPIRequestHeaders(request *http.Request) {
	request.Header.Set("Accept", "application/json")
	request.Header.Set("Accept-Language", "en-US,en;q=0.9")
	request.Header.Set("Cache-Control", "no-cache")
	request.Header.Set("Connection", "keep-alive")
}
