package places

import "net/http"

type Option func(*Config)

func WithAPIKey(key string) Option {
	return func(c *Config) {
		c.apiKey = key
	}
}

func WithBaseURL(baseURL string) Option {
	return func(c *Config) {
		c.baseURL = baseURL
	}
}

func WithMaxResults(n int) Option {
	return func(c *Config) {
		c.maxResults = n
	}
}

func WithHttpClient(clt *http.Client) Option {
	return func(c *Config) {
		c.httpClient = clt
	}
}
