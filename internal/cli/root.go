// Package cli implements the seed command used to load storefront exports
// into the record store.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	rootCmd    *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:   "seed",
		Short: "Load storefront exports into the record store",
		Long: `seed bulk-inserts JSON exports (customers, orders, products) into the
configured record store. Records already present are counted as duplicates.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (defaults to $SHOP_CONFIG)")
}

// Execute runs the root command
func Execute() error {
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
