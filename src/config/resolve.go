package config

// TagPolicy picks the "latest" tag out of a registry tag list.
type TagPolicy string

const (
	// TagPolicyLexical keeps digit-bearing tags and takes the lexicographic maximum.
	TagPolicyLexical TagPolicy = "lexical"
	// TagPolicySemver takes the highest tag that parses as a semantic version.
	TagPolicySemver TagPolicy = "semver"
)

// ResolveConfig controls the latest-tag resolvers.
type ResolveConfig struct {
	Local     bool      `yaml:"local" toml:"local"`
	Remote    bool      `yaml:"remote" toml:"remote"`
	GCloud    bool      `yaml:"gcloud" toml:"gcloud"`
	GCloudBin string    `yaml:"gcloud_bin" toml:"gcloud_bin"`
	TagPolicy TagPolicy `yaml:"tag_policy" toml:"tag_policy"`
	DockerHub string    `yaml:"dockerhub_url" toml:"dockerhub_url"`
	Timeout   int       `yaml:"timeout" toml:"timeout"` // seconds per request; 0 waits indefinitely
}

// DefaultResolveConfig returns production defaults.
func DefaultResolveConfig() ResolveConfig {
	return ResolveConfig{
		Local:     true,
		Remote:    true,
		GCloud:    true,
		GCloudBin: "gcloud",
		TagPolicy: TagPolicyLexical,
		DockerHub: "https://registry.hub.docker.com",
	}
}
