package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/compliscan/compliscan/internal/common"
	"github.com/compliscan/compliscan/internal/pipeline"
	"github.com/compliscan/compliscan/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// batchCmd represents the batch command.
var batchCmd = &cobra.Command{
	Use:   "batch [directory or files...]",
	Short: "Process many documents in parallel",
	Long: `Process a directory (or explicit list) of receipt documents using a
worker pool. Results are reported per file in input order.

Examples:
  compliscan batch ./receipts
  compliscan batch ./receipts --workers 8 --format json --output results.json
  compliscan batch a.jpg b.pdf c.png`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errors.New("no input files or directories provided")
		}

		cfg := GetConfig()
		paths, err := collectInputs(args)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			return errors.New("no processable documents found")
		}

		pipelineCfg, err := cfg.ToPipelineConfig()
		if err != nil {
			return err
		}
		p, err := pipeline.NewBuilder().WithConfig(pipelineCfg).Build()
		if err != nil {
			return fmt.Errorf("failed to build pipeline: %w", err)
		}

		timer := common.NewNamedTimer("batch")
		results, err := p.ProcessFilesParallel(cmd.Context(), paths)
		elapsed := timer.Stop()
		if err != nil && !cfg.Batch.ContinueOnError {
			return err
		}
		slog.Debug("batch complete",
			"documents", len(results),
			"duration", elapsed,
			"memory", common.GetMemoryStats().String())

		outputs := make([]fileOutput, 0, len(results))
		failed := 0
		for _, r := range results {
			if r.Err != nil {
				failed++
			}
			outputs = append(outputs, fileOutput{Path: r.Path, Result: r.Result, Err: r.Err})
		}
		if err := writeOutputs(cmd, cfg, outputs); err != nil {
			return err
		}

		if failed > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d documents failed\n", failed, len(results))
			if !cfg.Batch.ContinueOnError {
				return fmt.Errorf("%d documents failed", failed)
			}
		}
		return nil
	},
}

// collectInputs expands directories into their processable documents and
// passes explicit file paths through untouched.
func collectInputs(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", arg, err)
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot read directory %s: %w", arg, err)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			ext := strings.ToLower(filepath.Ext(e.Name()))
			if ext == ".pdf" || utils.IsSupportedImage(e.Name()) {
				paths = append(paths, filepath.Join(arg, e.Name()))
			}
		}
	}
	return paths, nil
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntP("workers", "w", 0, "number of parallel workers (0 = number of CPUs)")
	batchCmd.Flags().Bool("continue-on-error", true, "keep processing remaining documents after a failure")
	batchCmd.Flags().StringP("format", "f", "", "output format (text, json)")
	batchCmd.Flags().StringP("output", "o", "", "write results to file instead of stdout")
	batchCmd.Flags().Bool("include-text", false, "include the full recognized text in the output")

	_ = viper.BindPFlag("batch.workers", batchCmd.Flags().Lookup("workers"))
	_ = viper.BindPFlag("batch.continue_on_error", batchCmd.Flags().Lookup("continue-on-error"))
	_ = viper.BindPFlag("output.format", batchCmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("output.file", batchCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("output.include_text", batchCmd.Flags().Lookup("include-text"))
}
