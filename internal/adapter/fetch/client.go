package fetch

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"time"

	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/network/standard"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const DefaultTimeout = 15 * time.Second

var ErrUnexpectedStatus = errors.New("unexpected http status")

type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d from %s", ErrUnexpectedStatus, e.Code, e.URL)
}

func (e *StatusError) Unwrap() error { return ErrUnexpectedStatus }

// NewClient returns a hertz client on the standard dialer so https URLs work.
func NewClient(timeout time.Duration) (*client.Client, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return client.NewClient(
		client.WithDialer(standard.NewDialer()),
		client.WithTLSConfig(&tls.Config{MinVersion: tls.VersionTLS12}),
		client.WithDialTimeout(timeout),
		client.WithClientReadTimeout(timeout),
	)
}

// Get fetches url, following redirects, and fails on any non-2xx status.
func Get(ctx context.Context, c *client.Client, url string, headers map[string]string) ([]byte, error) {
	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()
	defer protocol.ReleaseRequest(req)
	defer protocol.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.SetMethod(consts.MethodGet)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if err := c.DoRedirects(ctx, req, resp, 5); err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	if code := resp.StatusCode(); code < 200 || code >= 300 {
		return nil, &StatusError{URL: url, Code: code}
	}
	body := resp.Body()
	out := make([]byte, len(body))
	copy(out, body)
	return out, nil
}
