package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/AnyUserName/bg3icon-cli/internal/manifest"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <out_dir_or_manifest>",
	Short: "Display statistics for a built icon directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(c *cobra.Command, args []string) error {
	m, _, err := manifest.Read(args[0])
	if err != nil {
		return err
	}
	printStats(c.OutOrStdout(), m)
	return nil
}

func printStats(w io.Writer, m *manifest.Manifest) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Manifest version: %d\n", m.Version)
	fmt.Fprintf(w, "  Generated:        %s\n", m.GeneratedAt)
	fmt.Fprintf(w, "  Input:            %s\n", m.InputDir)
	fmt.Fprintf(w, "  Prefix:           %q\n", m.Prefix)
	fmt.Fprintf(w, "  Status:           %s\n", m.Status)
	fmt.Fprintln(w)

	s := m.Stats
	fmt.Fprintf(w, "  Source images:    %d\n", s.TotalSources)
	fmt.Fprintf(w, "  Icons:            %d\n", s.TotalIcons)
	fmt.Fprintf(w, "  Failures:         %d\n", s.TotalFailures)
	fmt.Fprintf(w, "  Output size:      %s\n", formatBytes(s.TotalBytes))
	fmt.Fprintln(w)

	// Per-tier breakdown.
	type tierStat struct {
		count int
		bytes int64
	}
	byTier := map[string]tierStat{}
	for _, ic := range m.Icons {
		ts := byTier[ic.Tier]
		ts.count++
		ts.bytes += ic.Size
		byTier[ic.Tier] = ts
	}
	var ids []string
	for id := range byTier {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	fmt.Fprintln(w, "  Tier breakdown:")
	for _, id := range ids {
		ts := byTier[id]
		fmt.Fprintf(w, "    %-8s  %4d icons  %s\n", id, ts.count, formatBytes(ts.bytes))
	}
	fmt.Fprintln(w)

	if len(m.Failures) > 0 {
		byKind := map[string]int{}
		for _, f := range m.Failures {
			byKind[f.Kind]++
		}
		var kinds []string
		for k := range byKind {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)
		fmt.Fprintf(w, "  Failures (%d):\n", len(m.Failures))
		for _, k := range kinds {
			fmt.Fprintf(w, "    ⚠ %-20s %d\n", k, byKind[k])
		}
		fmt.Fprintln(w)
	}
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
