// Package probe checks whether remote links still resolve.
package probe

import (
	"context"
	"net/http"
	"time"

	"link-catalog/internal/conf"
	"link-catalog/internal/domain"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
)

const (
	DefaultTimeout   = 5 * time.Second
	DefaultUserAgent = "Mozilla/5.0 (compatible; link-catalog/1.0)"
)

// HTTPProber issues a HEAD request per link and follows redirects.
type HTTPProber struct {
	client  *http.Client
	timeout time.Duration
	log     *log.Helper
}

type userAgentTransport struct {
	transport http.RoundTripper
	userAgent string
}

func (t userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", t.userAgent)
	return t.transport.RoundTrip(req)
}

// NewHTTPProber creates a prober. Zero values fall back to DefaultTimeout and DefaultUserAgent.
func NewHTTPProber(timeout time.Duration, userAgent string, logger log.Logger) *HTTPProber {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &HTTPProber{
		client: &http.Client{
			Transport: userAgentTransport{
				transport: http.DefaultTransport,
				userAgent: userAgent,
			},
		},
		timeout: timeout,
		log:     log.NewHelper(log.With(logger, "module", "probe")),
	}
}

// Probe reports whether url answers with a 2xx or 3xx status after redirects.
// Transport errors and timeouts count as dead.
func (p *HTTPProber) Probe(ctx context.Context, url string) bool {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		p.log.WithContext(ctx).Debugf("probe %s: %v", url, err)
		return false
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.log.WithContext(ctx).Debugf("probe %s: %v", url, err)
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 400
}

var _ domain.Prober = (*HTTPProber)(nil)

// ProviderSet is probe providers.
var ProviderSet = wire.NewSet(NewHTTPProberFromConf, wire.Bind(new(domain.Prober), new(*HTTPProber)))

// NewHTTPProberFromConf builds a prober from the sweep section.
func NewHTTPProberFromConf(c *conf.Sweep, logger log.Logger) *HTTPProber {
	if c == nil {
		return NewHTTPProber(0, "", logger)
	}
	return NewHTTPProber(c.ProbeTimeout.AsDuration(), c.UserAgent, logger)
}
