package knowledge

import "time"

// Document is one indexed chunk of the ServeXa knowledge corpus.
type Document struct {
	ID        string
	Content   string
	Metadata  map[string]string
	CreatedAt time.Time
}

// Result is a search hit with its cosine similarity score (0-1).
type Result struct {
	Document   Document
	Similarity float32
}

// SearchOption configures a search using the functional options pattern.
type SearchOption func(*searchConfig)

type searchConfig struct {
	topK    int
	source  string
	timeout time.Duration
}

// WithTopK caps the number of results. Default is 5.
func WithTopK(k int) SearchOption {
	return func(c *searchConfig) {
		if k > 0 {
			c.topK = k
		}
	}
}

// WithSource restricts results to documents indexed from one source.
func WithSource(source string) SearchOption {
	return func(c *searchConfig) { c.source = source }
}

// WithTimeout overrides the per-search deadline. Default is 10 seconds.
func WithTimeout(d time.Duration) SearchOption {
	return func(c *searchConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func buildSearchConfig(opts []SearchOption) *searchConfig {
	cfg := &searchConfig{
		topK:    5,
		timeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
