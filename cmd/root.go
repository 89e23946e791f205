// Package cmd holds the apilens command tree.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/apilens/apilens/analyze"
	"github.com/apilens/apilens/embedding"
	"github.com/apilens/apilens/importance"
	"github.com/apilens/apilens/semantic"
)

var rootCmd = &cobra.Command{
	Use:   "apilens",
	Short: "Infer schemas, semantics and layout hints from JSON API responses",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(viper.GetString("log"))
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("log", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("strategy", "embedding", "name matching strategy (embedding or regex)")

	viper.SetEnvPrefix("APILENS")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	_ = viper.BindPFlag("log", rootCmd.PersistentFlags().Lookup("log"))
	_ = viper.BindPFlag("strategy", rootCmd.PersistentFlags().Lookup("strategy"))
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging(level string) error {
	var logLevel slog.Level
	err := logLevel.UnmarshalText([]byte(level))
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(h))
	return err
}

// newAnalyzer builds the full pipeline with the embedded artifact and the
// configured name matching strategy.
func newAnalyzer(opts ...analyze.Option) (*analyze.Analyzer, error) {
	art, err := embedding.DefaultArtifact()
	if err != nil {
		return nil, fmt.Errorf("load embedding artifact: %w", err)
	}

	strategy := semantic.StrategyEmbedding
	switch viper.GetString("strategy") {
	case "", "embedding":
	case "regex":
		strategy = semantic.StrategyRegex
	default:
		return nil, fmt.Errorf("unknown strategy %q", viper.GetString("strategy"))
	}

	scorer := semantic.NewScorer(strategy, embedding.NewClassifier(art))
	detector := semantic.NewDetector(semantic.NewRegistry(), scorer, semantic.NewCache())
	return analyze.New(detector, importance.NewAnalyzer(), opts...), nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
