package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/docpress/docpress/internal/config"
	"github.com/docpress/docpress/internal/progress"
	"github.com/docpress/docpress/internal/transform"
)

var transformOutDir string

var transformCmd = &cobra.Command{
	Use:   "transform <glob>...",
	Short: "Transform raw export files on disk",
	Long: `Runs the transform pipeline over local HTML export files matched by
the given glob patterns (** is supported). Each result is written next
to its input as <name>.out.html, or into --out-dir when set.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		reg, err := cfg.Registry()
		if err != nil {
			return fmt.Errorf("building document registry: %w", err)
		}
		tr := transform.New(reg)

		var paths []string
		seen := map[string]bool{}
		for _, pattern := range args {
			matches, err := doublestar.FilepathGlob(pattern)
			if err != nil {
				return fmt.Errorf("bad pattern %q: %w", pattern, err)
			}
			for _, m := range matches {
				if !seen[m] {
					seen[m] = true
					paths = append(paths, m)
				}
			}
		}
		if len(paths) == 0 {
			return fmt.Errorf("no files matched")
		}

		if transformOutDir != "" {
			if err := os.MkdirAll(transformOutDir, 0o755); err != nil {
				return fmt.Errorf("creating output directory: %w", err)
			}
		}

		reporter := progress.NewReporter()
		reporter.Start(len(paths))
		for i, path := range paths {
			reporter.Update(i+1, filepath.Base(path))

			raw, err := os.ReadFile(path)
			if err != nil {
				reporter.Finish()
				return fmt.Errorf("reading %s: %w", path, err)
			}

			out := outputPath(path, transformOutDir)
			if err := os.WriteFile(out, []byte(tr.Process(string(raw))), 0o644); err != nil {
				reporter.Finish()
				return fmt.Errorf("writing %s: %w", out, err)
			}
		}
		reporter.Finish()

		fmt.Printf("Transformed %d files\n", len(paths))
		return nil
	},
}

// outputPath derives the result path for one input file.
func outputPath(in, outDir string) string {
	base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in)) + ".out.html"
	if outDir != "" {
		return filepath.Join(outDir, base)
	}
	return filepath.Join(filepath.Dir(in), base)
}

func init() {
	transformCmd.Flags().StringVar(&transformOutDir, "out-dir", "", "directory for transformed output files")
	rootCmd.AddCommand(transformCmd)
}
