package server

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/musicdb/internal/shared"
)

// DevProxy forwards backend path prefixes to the album backend during local development.
//
// The outbound Host header is rewritten to the target's host.
type DevProxy struct {
	target   *url.URL
	prefixes []string
	proxy    *httputil.ReverseProxy
}

var _ Handler = (*DevProxy)(nil)

// NewDevProxy creates a [DevProxy] for target serving each of prefixes ("/api", "/media").
func NewDevProxy(target string, prefixes []string, logger *log.Logger) (*DevProxy, error) {
	u, err := url.Parse(target)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: proxy target %q", shared.ErrInvalidConfig, target)
	}
	if len(prefixes) == 0 {
		return nil, fmt.Errorf("%w: proxy needs at least one prefix", shared.ErrInvalidConfig)
	}

	p := &DevProxy{target: u}
	for _, prefix := range prefixes {
		p.prefixes = append(p.prefixes, "/"+strings.Trim(prefix, "/"))
	}

	p.proxy = &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(u)
			pr.SetXForwarded()
			pr.Out.Host = u.Host
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			if logger != nil {
				logger.Warn("proxy request failed", "path", r.URL.Path, "target", u.String(), "error", err)
			}
			w.WriteHeader(http.StatusBadGateway)
		},
	}
	return p, nil
}

// Routes returns a subtree pattern and an exact pattern for every prefix.
func (p *DevProxy) Routes() []string {
	routes := make([]string, 0, len(p.prefixes)*2)
	for _, prefix := range p.prefixes {
		routes = append(routes, prefix, prefix+"/")
	}
	return routes
}

// Target returns the backend the proxy forwards to.
func (p *DevProxy) Target() string {
	return p.target.String()
}

func (p *DevProxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.proxy.ServeHTTP(w, r)
}
