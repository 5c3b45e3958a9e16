// Package registry resolves the latest published tag of a container image.
// Every lookup strategy (local build directory, Docker Hub, GCR-style and
// Quay v2 registries, the gcloud CLI) implements the Resolver interface, and
// the order in which strategies are tried is expressed as Chains selected by
// a Router on the image's registry host.
package registry

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/sofmeright/dockertags/src/logger"
)

// NotAvailable is the report value for "no resolver found a latest tag".
const NotAvailable = "NA"

// Status classifies the outcome of a lookup.
type Status int

const (
	Absent   Status = iota // lookup ran and found nothing
	Resolved               // Tag holds the latest tag
	Failed                 // lookup could not complete; Err holds the cause
)

func (s Status) String() string {
	switch s {
	case Absent:
		return "absent"
	case Resolved:
		return "resolved"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result is the outcome of one Resolve call.
type Result struct {
	Status Status
	Tag    string
	Source string // name of the resolver that produced the result
	Err    error
}

// TagOrNA returns the resolved tag, or NotAvailable for any other outcome.
func (r Result) TagOrNA() string {
	if r.Status == Resolved {
		return r.Tag
	}
	return NotAvailable
}

// resolved builds a Resolved result. Values the upstream tools use to say
// "nothing" are folded into Absent.
func resolved(source, tag string) Result {
	switch strings.TrimSpace(tag) {
	case "", NotAvailable, "None":
		return absent(source)
	}
	return Result{Status: Resolved, Tag: tag, Source: source}
}

func absent(source string) Result {
	return Result{Status: Absent, Source: source}
}

func failed(source string, err error) Result {
	return Result{Status: Failed, Source: source, Err: err}
}

// Resolver looks up the latest tag of an image path (registry/repo, no tag).
type Resolver interface {
	// Name identifies the strategy in logs and reports.
	Name() string

	// Resolve never returns an error directly; failures are reported
	// through Result.Status and Result.Err.
	Resolve(ctx context.Context, image string) Result
}

// Chain tries resolvers in order and returns the first Resolved result.
type Chain struct {
	name      string
	resolvers []Resolver
}

// NewChain builds a chain. A chain with no resolvers always returns Absent.
func NewChain(name string, resolvers ...Resolver) *Chain {
	return &Chain{name: name, resolvers: resolvers}
}

func (c *Chain) Name() string { return c.name }

// Resolvers returns the chain members in try order.
func (c *Chain) Resolvers() []Resolver { return c.resolvers }

func (c *Chain) Resolve(ctx context.Context, image string) Result {
	var errs *multierror.Error
	for _, r := range c.resolvers {
		res := r.Resolve(ctx, image)
		switch res.Status {
		case Resolved:
			return res
		case Failed:
			logger.Debug().
				Str("resolver", r.Name()).
				Str("image", image).
				Err(res.Err).
				Msg("tag lookup failed")
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", r.Name(), res.Err))
		default:
			logger.Debug().
				Str("resolver", r.Name()).
				Str("image", image).
				Msg("no tag found")
		}
		if ctx.Err() != nil {
			break
		}
	}
	if errs != nil {
		return failed(c.name, errs.ErrorOrNil())
	}
	return absent(c.name)
}

// Route sends images whose registry host satisfies Match to Resolver.
type Route struct {
	Match    func(host string) bool
	Resolver Resolver
}

// Router picks the first route matching an image's registry host.
type Router struct {
	routes   []Route
	fallback Resolver
}

// NewRouter builds a router; fallback handles hosts no route matches.
func NewRouter(fallback Resolver, routes ...Route) *Router {
	return &Router{routes: routes, fallback: fallback}
}

func (r *Router) Name() string { return "remote" }

// Route returns the resolver responsible for image.
func (r *Router) Route(image string) Resolver {
	host := Host(image)
	for _, rt := range r.routes {
		if rt.Match(host) {
			return rt.Resolver
		}
	}
	return r.fallback
}

func (r *Router) Resolve(ctx context.Context, image string) Result {
	return r.Route(image).Resolve(ctx, image)
}

// Host returns the leading path segment of image, which names the registry
// for fully qualified references ("ghcr.io/org/tool" → "ghcr.io").
func Host(image string) string {
	host, _, _ := strings.Cut(image, "/")
	return host
}

// IsGCRHost matches Google Container Registry and GitHub Container Registry hosts.
func IsGCRHost(host string) bool {
	return strings.Contains(host, "gcr") || strings.Contains(host, "ghcr")
}

// IsQuayHost matches quay.io.
func IsQuayHost(host string) bool {
	return strings.Contains(host, "quay.io")
}

// Options configures the resolver tree built by New.
type Options struct {
	DockerDir    string // local build directories; empty disables the local lookup
	Remote       bool
	GCloud       bool
	GCloudBin    string
	TagPolicy    string // "lexical" or "semver"
	DockerHubURL string
	Timeout      time.Duration // per remote lookup; zero means no limit

	Transport http.RoundTripper // nil uses the default transport
	Runner    Runner            // nil runs real processes
}

// New builds the full lookup order:
//
//	local → (gcr → gcloud | quay | dockerhub), chosen by registry host
func New(opts Options) (*Chain, error) {
	selector, err := SelectorFor(opts.TagPolicy)
	if err != nil {
		return nil, err
	}

	var resolvers []Resolver
	if opts.DockerDir != "" {
		resolvers = append(resolvers, NewLocal(opts.DockerDir))
	}

	if opts.Remote {
		gcr := []Resolver{withTimeout(NewGCR(selector, opts.Transport), opts.Timeout)}
		if opts.GCloud {
			gcr = append(gcr, withTimeout(NewGCloud(opts.GCloudBin, opts.Runner), opts.Timeout))
		}

		router := NewRouter(
			withTimeout(NewDockerHub(opts.DockerHubURL, opts.Transport), opts.Timeout),
			Route{Match: IsGCRHost, Resolver: NewChain("gcr", gcr...)},
			Route{Match: IsQuayHost, Resolver: withTimeout(NewQuay(selector, opts.Transport), opts.Timeout)},
		)
		resolvers = append(resolvers, router)
	}

	return NewChain("latest", resolvers...), nil
}

// timed bounds each lookup of the wrapped resolver.
type timed struct {
	Resolver
	d time.Duration
}

func withTimeout(r Resolver, d time.Duration) Resolver {
	if d <= 0 {
		return r
	}
	return &timed{Resolver: r, d: d}
}

func (t *timed) Resolve(ctx context.Context, image string) Result {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.Resolver.Resolve(ctx, image)
}
