// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/enrichment-engine/internal/analysis"
	"github.com/pdiddy/enrichment-engine/internal/archive"
	"github.com/pdiddy/enrichment-engine/internal/david"
	"github.com/pdiddy/enrichment-engine/internal/secrets"
	"github.com/pdiddy/enrichment-engine/internal/summarize"
	"github.com/pdiddy/enrichment-engine/pkg/types"
)

// Config keys. Nested keys map to ENRICHMENT_ENGINE_DAVID_ENDPOINT and so on.
const (
	keyEndpoint        = "david.endpoint"
	keyTimeout         = "david.timeout"
	keyUserAgent       = "david.user_agent"
	keyRequestInterval = "david.request_interval"
	keyMaxRetries      = "david.max_retries"
	keyLogLevel        = "david.log_level"

	keyIdentity   = "analysis.identity"
	keyIDType     = "analysis.id_type"
	keyStringency = "analysis.stringency"
	keyTopN       = "analysis.top_n"

	keyArchiveDir        = "archive.dir"
	keyArchiveMaxResults = "archive.max_results"
)

var envKeyReplacer = strings.NewReplacer(".", "_")

func setDefaults() {
	viper.SetDefault(keyEndpoint, david.DefaultEndpoint)
	viper.SetDefault(keyTimeout, 600*time.Second)
	viper.SetDefault(keyUserAgent, "enrichment-engine/"+version)
	viper.SetDefault(keyRequestInterval, time.Second)
	viper.SetDefault(keyMaxRetries, 5)
	viper.SetDefault(keyLogLevel, "warning")

	viper.SetDefault(keyIDType, analysis.DefaultIDType)
	viper.SetDefault(keyStringency, string(types.StringencyMedium))
	viper.SetDefault(keyTopN, summarize.DefaultTopN)

	viper.SetDefault(keyArchiveDir, "archive")
	viper.SetDefault(keyArchiveMaxResults, archive.DefaultMaxResults)
}

// clientConfig builds the service client settings from config and env.
func clientConfig(cmd *cobra.Command) types.ClientConfig {
	level := viper.GetString(keyLogLevel)
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = "debug"
	}
	return types.ClientConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration(keyTimeout),
			UserAgent: viper.GetString(keyUserAgent),
		},
		Endpoint:        viper.GetString(keyEndpoint),
		RequestInterval: viper.GetDuration(keyRequestInterval),
		MaxRetries:      viper.GetInt(keyMaxRetries),
		LogLevel:        level,
	}
}

// analysisConfig merges flags over config values. The identity falls back
// to the david-email secret.
func analysisConfig(cmd *cobra.Command) types.AnalysisConfig {
	return types.AnalysisConfig{
		Identity:   loadedSecrets.Value(secrets.DAVIDEmail, stringSetting(cmd, "email", keyIdentity)),
		IDType:     stringSetting(cmd, "id-type", keyIDType),
		Stringency: types.Stringency(stringSetting(cmd, "stringency", keyStringency)),
		TopN:       intSetting(cmd, "top-n", keyTopN),
	}
}

// archiveConfig builds the archive settings.
func archiveConfig(cmd *cobra.Command) types.ArchiveConfig {
	return types.ArchiveConfig{
		Dir:        stringSetting(cmd, "archive-dir", keyArchiveDir),
		MaxResults: viper.GetInt(keyArchiveMaxResults),
	}
}

// stringSetting returns the flag value when the flag was given on the
// command line, otherwise the config value for key.
func stringSetting(cmd *cobra.Command, flag, key string) string {
	if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
		return f.Value.String()
	}
	return viper.GetString(key)
}

func intSetting(cmd *cobra.Command, flag, key string) int {
	if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
		n, _ := cmd.Flags().GetInt(flag)
		return n
	}
	return viper.GetInt(key)
}
