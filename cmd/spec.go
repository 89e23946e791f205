package cmd

import (
	"github.com/spf13/cobra"

	"github.com/apilens/apilens/openapi"
)

var specCmd = &cobra.Command{
	Use:   "spec [file]",
	Short: "Parse an OpenAPI or Swagger 2.0 document and print the adapted spec",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readInput(args[0])
		if err != nil {
			return err
		}
		parsed, err := openapi.ParseBytes(raw)
		if err != nil {
			return err
		}
		return printJSON(parsed)
	},
}

func init() {
	rootCmd.AddCommand(specCmd)
}
