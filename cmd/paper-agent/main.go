// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paper-agent CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/GodHu777777/paper-reference-agent/internal/secrets"
	"github.com/GodHu777777/paper-reference-agent/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns the secret value for key if it exists, or fallback otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the paper-agent CLI.
var rootCmd = &cobra.Command{
	Use:   "paper-agent",
	Short: "Resolve paper titles to complete bibliographic records",
	Long: `paper-agent resolves paper titles to complete bibliographic records:
authors, venue, year, DOI, and printed page ranges. It queries DBLP,
Google Scholar, and Crossref in order (Semantic Scholar is available as
a configurable engine), picks the best title match, and runs a cascade
of page-extraction strategies over the winning record. Results are
cached on disk and logged to a local history database.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A .env alongside the working directory may carry API keys.
		_ = godotenv.Load()

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./paper-agent.yaml or ~/.config/paper-agent/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("paper-agent")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "paper-agent"))
		}
	}

	viper.SetEnvPrefix("PAPER_AGENT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the runtime configuration from the config file,
// environment, and secrets.
func loadConfig() types.Config {
	var cfg types.Config

	cfg.Sources.Timeout = viper.GetDuration("sources.timeout")
	cfg.Sources.UserAgent = viper.GetString("sources.user_agent")
	cfg.Sources.ProxyURL = viper.GetString("sources.proxy_url")
	cfg.Sources.Engines = viper.GetStringSlice("sources.engines")
	cfg.Sources.InterSourceDelay = viper.GetDuration("sources.delay")
	cfg.Sources.SemanticScholarAPIKey = secretDefault("semantic-scholar-api-key",
		viper.GetString("sources.semantic_scholar_api_key"))

	cfg.Cache.Dir = viper.GetString("cache.dir")
	cfg.Cache.ExpiryDays = viper.GetInt("cache.expiry_days")

	cfg.LLM.Enabled = viper.GetBool("llm.enabled")
	cfg.LLM.BaseURL = viper.GetString("llm.base_url")
	cfg.LLM.APIKey = secretDefault("llm-api-key", viper.GetString("llm.api_key"))
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	cfg.LLM.Model = viper.GetString("llm.model")
	cfg.LLM.Timeout = viper.GetDuration("llm.timeout")

	cfg.Browser.Enabled = viper.GetBool("browser.enabled")
	cfg.Browser.WaitTimeout = viper.GetDuration("browser.wait_timeout")

	cfg.History.Path = viper.GetString("history.path")

	cfg.Defaults()
	if cfg.History.Path == "" && !viper.IsSet("history.path") {
		cfg.History.Path = filepath.Join(cfg.Cache.Dir, "history.db")
	}
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
