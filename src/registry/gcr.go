package registry

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-containerregistry/pkg/authn"
	"github.com/google/go-containerregistry/pkg/name"
	"github.com/google/go-containerregistry/pkg/v1/remote"
)

// V2 resolves tags through the OCI distribution tag-list endpoint
// (GET https://{host}/v2/{project}/{image}/tags/list). The registry's
// anonymous token challenge is handled by go-containerregistry.
type V2 struct {
	name      string
	selector  Selector
	transport http.RoundTripper
}

// NewGCR creates a resolver for gcr.io, *.gcr.io and ghcr.io images.
func NewGCR(selector Selector, transport http.RoundTripper) *V2 {
	return &V2{name: "gcr", selector: selector, transport: transport}
}

func (v *V2) Name() string { return v.name }

func (v *V2) Resolve(ctx context.Context, image string) Result {
	tags, err := v.listTags(ctx, image)
	if err != nil {
		return failed(v.name, fmt.Errorf("%s: listing tags for %s: %w", v.name, image, err))
	}

	tag, ok := v.selector(tags)
	if !ok {
		return absent(v.name)
	}
	return resolved(v.name, tag)
}

func (v *V2) listTags(ctx context.Context, image string) ([]string, error) {
	repo, err := name.NewRepository(image)
	if err != nil {
		return nil, fmt.Errorf("parsing repository: %w", err)
	}

	opts := []remote.Option{
		remote.WithContext(ctx),
		remote.WithAuth(authn.Anonymous),
		remote.WithRetryBackoff(remote.Backoff{Steps: 1}), // single attempt
	}
	if v.transport != nil {
		opts = append(opts, remote.WithTransport(v.transport))
	}
	return remote.List(repo, opts...)
}
