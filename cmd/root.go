package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "docpress",
	Short: "Serve exported documents as navigable pages",
	Long: `Docpress turns raw HTML exports of hosted documents into clean,
navigable pages. It rewrites cross-document links to local routes,
assigns stable heading anchors, extracts list styling, and serves
the results over HTTP with a cached transform pipeline.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "docpress.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
