package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/apilens/apilens/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the analysis HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAnalyzer()
		if err != nil {
			return err
		}
		return server.New(a).ListenAndServe(viper.GetString("addr"))
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "address to listen on")
	_ = viper.BindPFlag("addr", serveCmd.Flags().Lookup("addr"))
	rootCmd.AddCommand(serveCmd)
}
