package cmd

import (
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	defaultFetchTimeoutSeconds = 15
	defaultComponentTimeoutSec = 5
	defaultConcurrency         = 2
	defaultRateLimit           = 2
)

// CLIConfig captures runtime configuration shared across commands.
type CLIConfig struct {
	Verbose bool
	Analyze AnalyzeRuntimeConfig
}

// AnalyzeRuntimeConfig consolidates flag-driven settings for the analyze command.
type AnalyzeRuntimeConfig struct {
	Concurrency         int
	RateLimit           int
	FetchTimeoutSecs    int
	ComponentTimeoutSec int
	IncludeFirstParty   bool
	OutputJSON          string
	LegacyView          bool
	TargetKeywords      []string
	Industry            string
}

var cliConfig = newCLIConfig()

func newCLIConfig() *CLIConfig {
	return &CLIConfig{
		Analyze: AnalyzeRuntimeConfig{
			Concurrency:         defaultConcurrency,
			RateLimit:           defaultRateLimit,
			FetchTimeoutSecs:    defaultFetchTimeoutSeconds,
			ComponentTimeoutSec: defaultComponentTimeoutSec,
		},
	}
}

// bindAnalyzeFlags registers the analyze command's flags against the shared
// runtime config.
func bindAnalyzeFlags(flags *pflag.FlagSet) {
	flags.IntVar(&cliConfig.Analyze.Concurrency, "concurrency", defaultConcurrency, "maximum concurrent targets")
	flags.IntVar(&cliConfig.Analyze.RateLimit, "rate", defaultRateLimit, "target fetches per second")
	flags.IntVar(&cliConfig.Analyze.FetchTimeoutSecs, "timeout", defaultFetchTimeoutSeconds, "fetch timeout in seconds")
	flags.BoolVar(&cliConfig.Analyze.IncludeFirstParty, "include-first-party", false, "analyze same-host resources too")
	flags.StringVar(&cliConfig.Analyze.OutputJSON, "json", "", "write full results to this JSON file")
	flags.BoolVar(&cliConfig.Analyze.LegacyView, "legacy", false, "print the legacy flat view as well")
	flags.StringSliceVar(&cliConfig.Analyze.TargetKeywords, "keywords", nil, "page content keywords for strategy scoring")
	flags.StringVar(&cliConfig.Analyze.Industry, "industry", "", "page industry for strategy scoring")
}

// applyConfigOverrides lets the config file override defaults that no flag
// set explicitly. Flags always win because they write the struct directly.
func applyConfigOverrides(cfg *CLIConfig) {
	if viper.IsSet("analyze.concurrency") && !flagChanged("concurrency") {
		cfg.Analyze.Concurrency = viper.GetInt("analyze.concurrency")
	}
	if viper.IsSet("analyze.rate_limit") && !flagChanged("rate") {
		cfg.Analyze.RateLimit = viper.GetInt("analyze.rate_limit")
	}
	if viper.IsSet("analyze.fetch_timeout_secs") && !flagChanged("timeout") {
		cfg.Analyze.FetchTimeoutSecs = viper.GetInt("analyze.fetch_timeout_secs")
	}
	if viper.IsSet("analyze.component_timeout_secs") {
		cfg.Analyze.ComponentTimeoutSec = viper.GetInt("analyze.component_timeout_secs")
	}
}

func flagChanged(name string) bool {
	f := analyzeCmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

func (c AnalyzeRuntimeConfig) fetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSecs) * time.Second
}

func (c AnalyzeRuntimeConfig) componentTimeout() time.Duration {
	return time.Duration(c.ComponentTimeoutSec) * time.Second
}
