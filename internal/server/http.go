package server

import (
	nethttp "net/http"

	"link-catalog/internal/conf"

	"github.com/go-kratos/kratos/v2/transport/http"
)

// NewHTTPServer new an HTTP server serving the catalog router.
// Kratos middleware does not wrap prefix handlers; the router carries its own.
func NewHTTPServer(c *conf.Server, router nethttp.Handler) *http.Server {
	var opts []http.ServerOption
	if c != nil && c.Http != nil {
		if c.Http.Network != "" {
			opts = append(opts, http.Network(c.Http.Network))
		}
		if c.Http.Addr != "" {
			opts = append(opts, http.Address(c.Http.Addr))
		}
		if c.Http.Timeout != nil {
			opts = append(opts, http.Timeout(c.Http.Timeout.AsDuration()))
		}
	}
	srv := http.NewServer(opts...)
	srv.HandlePrefix("/", router)
	return srv
}
