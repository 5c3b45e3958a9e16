package registry

import "net/http"

// NewQuay creates a resolver for quay.io images. Quay serves the same v2
// tag-list endpoint as GCR; only the name differs, and Quay lookups have no
// command-line fallback.
func NewQuay(selector Selector, transport http.RoundTripper) *V2 {
	return &V2{name: "quay", selector: selector, transport: transport}
}
