package client

import (
	"strings"
	"time"
)

// Config locates the file server's API.
type Config struct {
	RootURL  string        `yaml:"root_url"`
	Version  string        `yaml:"version"`
	FilesAPI string        `yaml:"files"`
	StatsAPI string        `yaml:"stats"`
	Timeout  time.Duration `yaml:"timeout"` // 0 = no client-side timeout
}

// DefaultConfig points at a server on localhost:8080.
func DefaultConfig() *Config {
	return &Config{
		RootURL:  "http://localhost:8080",
		Version:  "v1",
		FilesAPI: "files",
		StatsAPI: "stats",
	}
}

// FilesURL is the collection URL of the file API, e.g.
// http://localhost:8080/v1/files.
func (c *Config) FilesURL() string {
	return c.join(c.FilesAPI)
}

// StatsURL is the base URL of the stats API.
func (c *Config) StatsURL() string {
	return c.join(c.StatsAPI)
}

func (c *Config) join(api string) string {
	root := strings.TrimRight(c.RootURL, "/")
	return root + "/" + strings.Trim(c.Version, "/") + "/" + strings.Trim(api, "/")
}
