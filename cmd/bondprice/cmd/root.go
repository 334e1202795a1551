package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bondprice",
	Short: "Edit a bond's price, Z-spread or asset-swap margin and keep the others in step",
	Long: `bondprice edits one of three equivalent views of a bond's market value
(clean price, Z-spread, asset-swap margin) and re-derives the other two
through a valuation engine.

A failing computation only marks the affected field as invalid; the price
can be committed once all three fields validate. Every edit and commit is
written to an audit journal.`,
	SilenceUsage: true,
}

var cfgPath string

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "bondprice.yaml", "path to config file (YAML or JSON)")
}
