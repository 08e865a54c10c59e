// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the ads-parser CLI. It looks up
// papers in the NASA Astrophysics Data System, downloads whole catalogues
// of bibcodes into JSON artifacts, and analyzes their titles and abstracts
// as word frequencies and word clouds.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/ads-parser/internal/ads"
	"github.com/pdiddy/ads-parser/internal/bulk"
	"github.com/pdiddy/ads-parser/internal/catalogue"
	"github.com/pdiddy/ads-parser/internal/observability"
	"github.com/pdiddy/ads-parser/internal/secrets"
	"github.com/pdiddy/ads-parser/internal/textstats"
	"github.com/pdiddy/ads-parser/internal/wordcloud"
	"github.com/pdiddy/ads-parser/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const metricsNamespace = "ads_parser"

var (
	// loadedSecrets holds values loaded from .secrets/ at startup.
	loadedSecrets map[string]string

	logger  = zerolog.Nop()
	metrics = observability.NewMetrics(metricsNamespace)
)

// rootCmd is the base command for the ads-parser CLI.
var rootCmd = &cobra.Command{
	Use:   "ads-parser",
	Short: "Query NASA ADS and analyze paper catalogues",
	Long: `ads-parser retrieves paper metadata from the NASA Astrophysics Data System.

Look up single papers by bibcode, fetch many at once in batched requests,
or download a whole CSV catalogue into a JSON artifact. Artifacts can be
exported to YAML, CSL-YAML, or SQLite and analyzed as word frequencies and
word clouds.

The API token is read from --token, ADS_API_TOKEN (also from .env), the
.secrets/ads-api-token file, or ads.token in the config file, in that order.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = newLogger()
		log.Logger = logger
		cmd.SetContext(logger.WithContext(cmd.Context()))

		if err := secrets.LoadDotEnv(".env"); err != nil {
			return err
		}
		s, err := secrets.Load(secrets.DefaultDir)
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
			logger.Debug().Strs("keys", keys).Msg("loaded secrets")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./ads-parser.yaml or ~/.config/ads-parser/ads-parser.yaml)")
	pf.String("token", "", "ADS API token (overrides ADS_API_TOKEN and .secrets/ads-api-token)")
	pf.String("log-level", "", "log level: trace, debug, info, warn, error, disabled (default info)")
	pf.String("log-format", "", "log format: console or json (default console)")
	pf.String("metrics-file", "", "write run metrics in Prometheus textfile format to this path")

	viper.BindPFlag("log.level", pf.Lookup("log-level"))
	viper.BindPFlag("log.format", pf.Lookup("log-format"))
	viper.BindPFlag("metrics_file", pf.Lookup("metrics-file"))
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stderr")

	v.SetDefault("ads.base_url", ads.DefaultBaseURL)
	v.SetDefault("ads.timeout", ads.DefaultTimeout)
	v.SetDefault("ads.user_agent", ads.DefaultUserAgent+" ("+version+")")
	v.SetDefault("ads.max_batch_size", ads.DefaultMaxBatchSize)
	v.SetDefault("ads.max_retries", 0)

	v.SetDefault("catalogue.batch_size", bulk.DefaultBatchSize)
	v.SetDefault("catalogue.batch_delay", bulk.DefaultDelay)
	v.SetDefault("catalogue.include_abstracts", false)
	v.SetDefault("catalogue.column", catalogue.DefaultColumn)
	v.SetDefault("catalogue.input_path", "")
	v.SetDefault("catalogue.output_path", "")

	v.SetDefault("wordcloud.field", string(types.FieldTitles))
	v.SetDefault("wordcloud.top_n", textstats.DefaultTopN)
	v.SetDefault("wordcloud.min_word_length", textstats.DefaultMinLength)
	v.SetDefault("wordcloud.stopwords_file", "")
	v.SetDefault("wordcloud.width", wordcloud.DefaultWidth)
	v.SetDefault("wordcloud.height", wordcloud.DefaultHeight)
	v.SetDefault("wordcloud.max_words", wordcloud.DefaultMaxWords)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("ads-parser")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "ads-parser"))
		}
	}

	setDefaults(viper.GetViper())
	viper.SetEnvPrefix("ADS_PARSER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig decodes the merged flag, env, and file settings.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	return cfg, nil
}

func newLogger() zerolog.Logger {
	cfg := observability.DefaultLoggingConfig()
	if err := viper.UnmarshalKey("log", &cfg); err != nil {
		fmt.Fprintln(os.Stderr, "ignoring invalid log settings:", err)
	}
	return observability.NewLogger(cfg)
}

// newClient resolves the API token and builds an ADS client. A missing
// token fails here, before any request is sent.
func newClient(cmd *cobra.Command, cfg types.ADSConfig) (*ads.Client, error) {
	flagToken, _ := cmd.Flags().GetString("token")
	token, source := secrets.Resolver{
		Flag:    flagToken,
		Secrets: loadedSecrets,
		Config:  viper.GetString("ads.token"),
	}.Token()
	cfg.Token = token

	c, err := ads.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("token_source", string(source)).Str("base_url", cfg.BaseURL).Msg("ADS client ready")
	return c, nil
}

// writeMetrics dumps the run metrics when --metrics-file is set. It runs
// after failed commands too.
func writeMetrics() error {
	path := viper.GetString("metrics_file")
	if path == "" {
		return nil
	}
	return metrics.WriteTextfile(path)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	err := rootCmd.ExecuteContext(ctx)
	logger.Debug().Dur("elapsed", time.Since(start)).Msg("done")
	if merr := writeMetrics(); merr != nil {
		logger.Error().Err(merr).Msg("writing metrics")
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
