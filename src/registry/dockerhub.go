package registry

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

const defaultDockerHubURL = "https://registry.hub.docker.com"

// DockerHub resolves the most recently updated tag through the Docker Hub
// repositories API. Anonymous access only.
type DockerHub struct {
	client  httpClient
	baseURL string
}

// NewDockerHub creates a Docker Hub resolver. An empty baseURL uses the
// public hub.
func NewDockerHub(baseURL string, transport http.RoundTripper) *DockerHub {
	if baseURL == "" {
		baseURL = defaultDockerHubURL
	}
	return &DockerHub{
		client:  newHTTPClient(transport),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (d *DockerHub) Name() string { return "dockerhub" }

func (d *DockerHub) Resolve(ctx context.Context, image string) Result {
	repo := hubRepository(image)
	url := fmt.Sprintf("%s/v2/repositories/%s/tags/?page_size=1&ordering=last_updated", d.baseURL, repo)

	var page struct {
		Results []struct {
			Name string `json:"name"`
		} `json:"results"`
	}
	if err := d.client.getJSON(ctx, url, &page); err != nil {
		return failed(d.Name(), fmt.Errorf("dockerhub: listing tags for %s: %w", repo, err))
	}

	if len(page.Results) == 0 {
		return absent(d.Name())
	}
	return resolved(d.Name(), page.Results[0].Name)
}

// hubRepository maps an image path to its Docker Hub repository.
// "ubuntu" → "library/ubuntu"
// "docker.io/broadinstitute/gatk" → "broadinstitute/gatk"
func hubRepository(image string) string {
	for _, prefix := range []string{"docker.io/", "index.docker.io/", "registry.hub.docker.com/"} {
		image = strings.TrimPrefix(image, prefix)
	}
	if !strings.Contains(image, "/") {
		return "library/" + image
	}
	return image
}
