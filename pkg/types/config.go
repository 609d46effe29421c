// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for calls to the enrichment service.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Cluster reports on large lists
	// are slow, so the default is generous (600s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "enrichment-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ClientConfig holds settings for the remote enrichment client.
type ClientConfig struct {
	HTTPConfig `yaml:",inline"`

	// Endpoint is the SOAP service URL.
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// RequestInterval is the minimum spacing between requests (default 1s).
	RequestInterval time.Duration `json:"request_interval" yaml:"request_interval"`

	// MaxRetries bounds retries on HTTP 429 (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// LogLevel is the logrus level name for the client logger (default "warning").
	LogLevel string `json:"log_level" yaml:"log_level"`
}

// AnalysisConfig holds settings for one enrichment run.
type AnalysisConfig struct {
	// Identity is the registered account (usually an email address) used
	// to authenticate with the service.
	Identity string `json:"identity" yaml:"identity"`

	// IDType names the identifier namespace of the submitted list
	// (default "ENSEMBL_GENE_ID").
	IDType string `json:"id_type" yaml:"id_type"`

	// Stringency selects the clustering preset (default "medium").
	Stringency Stringency `json:"stringency" yaml:"stringency"`

	// TopN is the number of terms kept per summary row (default 4).
	TopN int `json:"top_n" yaml:"top_n"`
}

// ArchiveConfig holds settings for the local analysis archive.
type ArchiveConfig struct {
	// Dir is the directory holding the archive database.
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default limit for term searches (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
