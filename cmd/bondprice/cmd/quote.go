package cmd

import (
	"fmt"

	"github.com/rustyeddy/bondprice/config"
	"github.com/rustyeddy/bondprice/editor"
	"github.com/spf13/cobra"
)

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Derive the other two fields from a price or a Z-spread",
	Long: `Run a single edit without journaling and print the resulting fields.

Examples:
  bondprice quote -c bond.yaml --price 99.25
  bondprice quote -c bond.yaml --zspread 0.0085`,
	RunE: runQuote,
}

var (
	quotePrice   string
	quoteZSpread string
)

func init() {
	rootCmd.AddCommand(quoteCmd)
	quoteCmd.Flags().StringVar(&quotePrice, "price", "", "clean price (or clean,workout,settlement)")
	quoteCmd.Flags().StringVar(&quoteZSpread, "zspread", "", "z-spread as a decimal")
	quoteCmd.MarkFlagsMutuallyExclusive("price", "zspread")
	quoteCmd.MarkFlagsOneRequired("price", "zspread")
}

func runQuote(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	// start blank so the quoted value always differs from the record
	cfg.InitialPrice = ""

	s, cleanup, err := startSession(cfg, false)
	if err != nil {
		return err
	}
	defer cleanup()

	if quotePrice != "" {
		err = s.Apply(editor.FieldCleanPrice, quotePrice)
	} else {
		err = s.Apply(editor.FieldZSpread, quoteZSpread)
	}
	if err != nil {
		return fmt.Errorf("quote: %w", err)
	}

	renderView(cmd.OutOrStdout(), s.View())
	return nil
}
