package registry

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-containerregistry/pkg/name"
	ggcrregistry "github.com/google/go-containerregistry/pkg/registry"
	"github.com/google/go-containerregistry/pkg/v1/random"
	"github.com/google/go-containerregistry/pkg/v1/remote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pushTags uploads one random image under every tag to the registry at host.
func pushTags(t *testing.T, host, repo string, tags ...string) {
	t.Helper()
	img, err := random.Image(256, 1)
	require.NoError(t, err)
	for _, tag := range tags {
		ref, err := name.NewTag(fmt.Sprintf("%s/%s:%s", host, repo, tag))
		require.NoError(t, err)
		require.NoError(t, remote.Write(ref, img))
	}
}

func TestV2_ResolveFromRegistry(t *testing.T) {
	srv := httptest.NewServer(ggcrregistry.New())
	defer srv.Close()
	pushTags(t, strings.TrimPrefix(srv.URL, "http://"), "myorg/tool", "1.1.0", "1.2.0", "latest")

	rt := newRewriteTransport(t, srv.URL)
	res := NewGCR(SelectLexical, rt).Resolve(context.Background(), "ghcr.io/myorg/tool")

	require.Equal(t, Resolved, res.Status, res.Err)
	assert.Equal(t, "1.2.0", res.Tag)
	assert.Equal(t, "gcr", res.Source)
	assert.Contains(t, rt.hosts, "ghcr.io")
}

func TestV2_QuayUsesSameEndpoint(t *testing.T) {
	srv := httptest.NewServer(ggcrregistry.New())
	defer srv.Close()
	pushTags(t, strings.TrimPrefix(srv.URL, "http://"), "biocontainers/samtools", "1.9--h91753b0_8", "1.17--h00cdaf9_0")

	rt := newRewriteTransport(t, srv.URL)
	res := NewQuay(SelectLexical, rt).Resolve(context.Background(), "quay.io/biocontainers/samtools")

	require.Equal(t, Resolved, res.Status, res.Err)
	assert.Equal(t, "1.9--h91753b0_8", res.Tag)
	assert.Equal(t, "quay", res.Source)
}

func tagListServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/v2/":
			w.WriteHeader(http.StatusOK)
		case strings.HasSuffix(r.URL.Path, "/tags/list"):
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, body)
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestV2_NoDigitTags(t *testing.T) {
	srv := tagListServer(t, `{"name":"org/tool","tags":["latest","dev"]}`)
	defer srv.Close()

	res := NewGCR(SelectLexical, newRewriteTransport(t, srv.URL)).Resolve(context.Background(), "gcr.io/org/tool")
	assert.Equal(t, Absent, res.Status)
}

func TestV2_EmptyTagList(t *testing.T) {
	srv := tagListServer(t, `{"name":"org/tool","tags":[]}`)
	defer srv.Close()

	res := NewGCR(SelectLexical, newRewriteTransport(t, srv.URL)).Resolve(context.Background(), "gcr.io/org/tool")
	assert.Equal(t, Absent, res.Status)
}

func TestV2_UnknownRepository(t *testing.T) {
	srv := httptest.NewServer(ggcrregistry.New())
	defer srv.Close()

	res := NewGCR(SelectLexical, newRewriteTransport(t, srv.URL)).Resolve(context.Background(), "gcr.io/org/missing")
	assert.Equal(t, Failed, res.Status)
	assert.Error(t, res.Err)
}

func TestV2_InvalidRepository(t *testing.T) {
	res := NewGCR(SelectLexical, nil).Resolve(context.Background(), "gcr.io/Org/UPPER CASE")
	assert.Equal(t, Failed, res.Status)
}
