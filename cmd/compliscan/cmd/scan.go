package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/compliscan/compliscan/internal/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	outputFormatJSON = "json"
	outputFormatText = "text"
)

// scanCmd represents the scan command.
var scanCmd = &cobra.Command{
	Use:   "scan [files...]",
	Short: "Extract structured fields from receipt images and PDFs",
	Long: `Process one or more documents and extract structured receipt fields.

Supported formats: JPEG, PNG, BMP, WebP, HEIC, PDF

Examples:
  compliscan scan receipt.jpg
  compliscan scan invoice.pdf --format json
  compliscan scan *.png --output results.json --include-text`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errors.New("no input files provided")
		}

		cfg := GetConfig()
		format := cfg.Output.Format
		if format != outputFormatText && format != outputFormatJSON {
			return fmt.Errorf("invalid output format: %s (must be one of: %s)",
				format, strings.Join([]string{outputFormatText, outputFormatJSON}, ", "))
		}

		pipelineCfg, err := cfg.ToPipelineConfig()
		if err != nil {
			return err
		}
		p, err := pipeline.NewBuilder().WithConfig(pipelineCfg).Build()
		if err != nil {
			return fmt.Errorf("failed to build pipeline: %w", err)
		}

		var outputs []fileOutput
		for _, path := range args {
			res, err := p.ProcessFile(cmd.Context(), path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			outputs = append(outputs, fileOutput{Path: path, Result: res})
		}

		return writeOutputs(cmd, cfg, outputs)
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringP("format", "f", "", "output format (text, json)")
	scanCmd.Flags().StringP("output", "o", "", "write results to file instead of stdout")
	scanCmd.Flags().Bool("include-text", false, "include the full recognized text in the output")
	scanCmd.Flags().Int("width", 0, "normalization target width in pixels")
	scanCmd.Flags().Int("pdf-dpi", 0, "PDF page rasterization resolution")
	scanCmd.Flags().Float64("min-confidence", -1, "confidence below which results are flagged")

	_ = viper.BindPFlag("output.format", scanCmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("output.file", scanCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("output.include_text", scanCmd.Flags().Lookup("include-text"))
	_ = viper.BindPFlag("pipeline.normalize.optimal_width", scanCmd.Flags().Lookup("width"))
	_ = viper.BindPFlag("pipeline.pdf_render_dpi", scanCmd.Flags().Lookup("pdf-dpi"))
	_ = viper.BindPFlag("pipeline.recognizer.min_confidence", scanCmd.Flags().Lookup("min-confidence"))
}
