package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/AnyUserName/bg3icon-cli/internal/manifest"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <out_dir_or_manifest>",
	Short: "Check that every icon listed in a manifest exists and is unchanged",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(c *cobra.Command, args []string) error {
	m, path, err := manifest.Read(args[0])
	if err != nil {
		return err
	}

	out := c.OutOrStdout()
	errs := manifest.Validate(m, filepath.Dir(path))
	if len(errs) == 0 {
		fmt.Fprintln(out, "  ✓ Manifest is valid")
		fmt.Fprintf(out, "  ✓ %d icons, %d failures recorded — all files present\n",
			m.Stats.TotalIcons, m.Stats.TotalFailures)
		return nil
	}

	fmt.Fprintf(out, "  ✗ Manifest has %d error(s):\n", len(errs))
	for _, e := range errs {
		fmt.Fprintf(out, "    • %s\n", e)
	}
	return fmt.Errorf("validation failed with %d errors", len(errs))
}
