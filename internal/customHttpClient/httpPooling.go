// Package customHttpClient provides a shared pooled transport for outbound
// calls so long-running uploads reuse connections instead of dialing fresh.
package customHttpClient

import (
	"net/http"
	"time"

	"github.com/arvika/pdfchat/internal/config"
)

var pooledTransport = &http.Transport{
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
}

// Pooled returns a client backed by the shared transport with the given
// overall request timeout.
func Pooled(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: pooledTransport,
		Timeout:   timeout,
	}
}
