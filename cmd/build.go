package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/AnyUserName/bg3icon-cli/internal/config"
	"github.com/AnyUserName/bg3icon-cli/internal/manifest"
	"github.com/AnyUserName/bg3icon-cli/internal/pipeline"
	"github.com/AnyUserName/bg3icon-cli/internal/prefix"
	"github.com/AnyUserName/bg3icon-cli/internal/report"
	"github.com/AnyUserName/bg3icon-cli/internal/reveal"
	"github.com/spf13/cobra"
)

var (
	buildOutDir       string
	buildPrefix       string
	buildRandomPrefix bool
	buildWorkers      int
	buildOpen         bool
	buildManifest     bool
)

var buildCmd = &cobra.Command{
	Use:   "build [input_dir]",
	Short: "Resize every PNG in a folder into the icon tiers",
	Long: `Reads the PNG files directly inside input_dir (subfolders are ignored)
and writes <out>/<tier>/<prefix><name> for every file and tier.

A file that cannot be processed is reported and skipped; the other files
are still written. input_dir may come from the config file instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	addBatchFlags(buildCmd)
	rootCmd.AddCommand(buildCmd)
}

// addBatchFlags registers the flags shared by build and watch.
func addBatchFlags(c *cobra.Command) {
	c.Flags().StringVarP(&buildOutDir, "out", "o", "", "output directory (default from config, ./bg3icon_out)")
	c.Flags().StringVarP(&buildPrefix, "prefix", "p", "", "prefix prepended to every output file name")
	c.Flags().BoolVar(&buildRandomPrefix, "random-prefix", false, "use a random 3-letter prefix plus '_'")
	c.Flags().IntVarP(&buildWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
	c.Flags().BoolVar(&buildOpen, "open", false, "open the output folder when every image succeeded")
	c.Flags().BoolVar(&buildManifest, "manifest", false, "write "+manifest.FileName+" into the output folder")
}

// batchOptions is the merged result of config file and flags.
type batchOptions struct {
	input    string
	output   string
	prefix   string
	workers  int
	open     bool
	manifest bool
}

func resolveOptions(c *cobra.Command, args []string) (batchOptions, error) {
	cfg, err := config.LoadOptional(configPath, c.Flags().Changed("config"))
	if err != nil {
		return batchOptions{}, err
	}

	flags := c.Flags()
	if len(args) == 1 {
		cfg.Input = args[0]
	}
	if flags.Changed("out") {
		cfg.Output = buildOutDir
	}
	if flags.Changed("prefix") {
		cfg.Prefix = buildPrefix
		cfg.RandomPrefix = false
	}
	if flags.Changed("random-prefix") {
		cfg.RandomPrefix = buildRandomPrefix
	}
	if flags.Changed("workers") {
		cfg.Workers = buildWorkers
	}
	if flags.Changed("open") {
		cfg.Open = buildOpen
	}
	if flags.Changed("manifest") {
		cfg.Manifest = buildManifest
	}
	if err := cfg.Validate(); err != nil {
		return batchOptions{}, err
	}
	if cfg.Input == "" {
		return batchOptions{}, fmt.Errorf("no input directory: pass one or set input in %s", configPath)
	}

	absInput, err := filepath.Abs(cfg.Input)
	if err != nil {
		return batchOptions{}, fmt.Errorf("resolve input path: %w", err)
	}
	absOutput, err := filepath.Abs(cfg.Output)
	if err != nil {
		return batchOptions{}, fmt.Errorf("resolve output path: %w", err)
	}

	opts := batchOptions{
		input:    absInput,
		output:   absOutput,
		prefix:   cfg.Prefix,
		workers:  cfg.Workers,
		open:     cfg.Open,
		manifest: cfg.Manifest,
	}
	if cfg.RandomPrefix {
		opts.prefix = prefix.Generate(prefix.DefaultLength) + "_"
	}
	return opts, nil
}

func runBuild(c *cobra.Command, args []string) error {
	opts, err := resolveOptions(c, args)
	if err != nil {
		return err
	}
	res, err := runBatch(opts)
	if err != nil {
		return err
	}
	if res.Status == pipeline.StatusCompletedWithErrors {
		return fmt.Errorf("%d of %d units failed", len(res.Failed()), len(res.Outcomes))
	}
	return nil
}

// runBatch runs one batch, writes the manifest if asked to, and prints
// the summary. Only pipeline-level faults are returned as errors.
func runBatch(opts batchOptions) (*pipeline.Result, error) {
	start := time.Now()

	logVerbose("input:   %s", opts.input)
	logVerbose("output:  %s", opts.output)
	logVerbose("prefix:  %q", opts.prefix)

	cfg := pipeline.Config{
		Workers: opts.workers,
		Verbose: verbose,
	}
	if opts.open {
		cfg.Notifier = &reveal.Opener{}
	}
	p := pipeline.New(cfg)
	logVerbose("workers: %d", p.Workers())

	res, err := p.Run(pipeline.NewJob(opts.input, opts.output, opts.prefix))
	if err != nil {
		fmt.Fprint(os.Stdout, report.StatusLine(res.Status)+"\n")
		return res, fmt.Errorf("pipeline: %w", err)
	}

	if opts.manifest && res.Status != pipeline.StatusNoEligibleFiles {
		m, err := manifest.FromResult(res)
		if err != nil {
			return res, fmt.Errorf("build manifest: %w", err)
		}
		manifestPath := filepath.Join(opts.output, manifest.FileName)
		if err := manifest.WriteJSON(m, manifestPath); err != nil {
			return res, fmt.Errorf("write manifest: %w", err)
		}
		logVerbose("manifest: %s", manifestPath)
	}

	fmt.Fprint(os.Stdout, report.Summary(res, time.Since(start)))
	return res, nil
}
