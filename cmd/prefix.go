package cmd

import (
	"fmt"

	"github.com/AnyUserName/bg3icon-cli/internal/prefix"
	"github.com/spf13/cobra"
)

var (
	prefixLength      int
	prefixNoSeparator bool
)

var prefixCmd = &cobra.Command{
	Use:   "prefix",
	Short: "Print a random uppercase file name prefix",
	Args:  cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		if prefixLength <= 0 {
			return fmt.Errorf("length must be positive, got %d", prefixLength)
		}
		p := prefix.Generate(prefixLength)
		if !prefixNoSeparator {
			p += "_"
		}
		fmt.Fprintln(c.OutOrStdout(), p)
		return nil
	},
}

func init() {
	prefixCmd.Flags().IntVarP(&prefixLength, "length", "n", prefix.DefaultLength, "number of letters")
	prefixCmd.Flags().BoolVar(&prefixNoSeparator, "no-separator", false, "omit the trailing '_'")
	rootCmd.AddCommand(prefixCmd)
}
