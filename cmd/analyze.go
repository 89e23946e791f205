package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/apilens/apilens/analyze"
	"github.com/apilens/apilens/openapi"
	"github.com/apilens/apilens/semantic"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Analyze a JSON document and print the report",
	Long: `Analyze infers the schema of a JSON document, classifies its fields,
ranks their importance and picks display components. Pass "-" to read from
stdin. With --spec, format hints from the matching OpenAPI operation inform
the classification.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("source", "", "source identifier recorded in the report")
	analyzeCmd.Flags().String("spec", "", "OpenAPI document supplying format hints")
	analyzeCmd.Flags().String("operation", "", "operationId whose response hints to apply")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	body, err := readInput(args[0])
	if err != nil {
		return err
	}

	source, _ := cmd.Flags().GetString("source")
	if source == "" {
		source = args[0]
	}

	var opts []analyze.Option
	specPath, _ := cmd.Flags().GetString("spec")
	if specPath != "" {
		opID, _ := cmd.Flags().GetString("operation")
		hints, err := hintsFromSpec(specPath, opID)
		if err != nil {
			return err
		}
		if hints != nil {
			opts = append(opts, analyze.WithHints(hints))
		}
	}

	a, err := newAnalyzer(opts...)
	if err != nil {
		return err
	}

	rep, err := a.Analyze(body, source)
	if err != nil {
		return err
	}
	return printJSON(rep)
}

func hintsFromSpec(path, operationID string) (map[string]*semantic.Hints, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	spec, err := openapi.ParseBytes(raw)
	if err != nil {
		return nil, err
	}
	for _, op := range spec.Operations {
		if operationID != "" && op.OperationID != operationID {
			continue
		}
		if op.ResponseHints != nil {
			return op.ResponseHints, nil
		}
	}
	if operationID != "" {
		return nil, fmt.Errorf("no response hints for operation %q", operationID)
	}
	return nil, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
