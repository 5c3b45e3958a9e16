package registry

import (
	"net/http"
	"net/url"
	"testing"
)

// rewriteTransport sends every request to target, keeping path and query,
// so resolvers that build URLs for public registries can be served by a
// local test server.
type rewriteTransport struct {
	target *url.URL
	hosts  []string // hosts seen, in request order
}

func newRewriteTransport(t *testing.T, serverURL string) *rewriteTransport {
	t.Helper()
	u, err := url.Parse(serverURL)
	if err != nil {
		t.Fatalf("parsing server url: %v", err)
	}
	return &rewriteTransport{target: u}
}

func (rt *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	rt.hosts = append(rt.hosts, req.URL.Host)
	out := req.Clone(req.Context())
	out.URL.Scheme = rt.target.Scheme
	out.URL.Host = rt.target.Host
	out.Host = rt.target.Host
	return http.DefaultTransport.RoundTrip(out)
}
