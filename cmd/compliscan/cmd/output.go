package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/compliscan/compliscan/internal/config"
	"github.com/compliscan/compliscan/internal/extract"
	"github.com/compliscan/compliscan/internal/pipeline"
	"github.com/spf13/cobra"
)

// fileOutput pairs an input path with its extraction result for rendering.
type fileOutput struct {
	Path   string
	Result *pipeline.Result
	Err    error
}

// jsonOutput is the wire shape of one result in JSON output mode.
type jsonOutput struct {
	File          string          `json:"file"`
	Kind          string          `json:"kind,omitempty"`
	Confidence    float64         `json:"confidence"`
	LowConfidence bool            `json:"low_confidence,omitempty"`
	Pages         int             `json:"pages,omitempty"`
	Fields        *extract.Fields `json:"fields,omitempty"`
	Text          string          `json:"text,omitempty"`
	Error         string          `json:"error,omitempty"`
}

// writeOutputs renders results in the configured format to stdout or the
// configured output file.
func writeOutputs(cmd *cobra.Command, cfg *config.Config, outputs []fileOutput) error {
	w := cmd.OutOrStdout()
	if cfg.Output.File != "" {
		f, err := os.Create(cfg.Output.File)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if cfg.Output.Format == outputFormatJSON {
		return writeJSON(w, cfg, outputs)
	}
	return writeText(w, cfg, outputs)
}

func writeJSON(w io.Writer, cfg *config.Config, outputs []fileOutput) error {
	encoded := make([]jsonOutput, 0, len(outputs))
	for _, o := range outputs {
		j := jsonOutput{File: o.Path}
		if o.Err != nil {
			j.Error = o.Err.Error()
		} else {
			j.Kind = o.Result.Kind.String()
			j.Confidence = o.Result.Confidence
			j.LowConfidence = o.Result.LowConfidence
			j.Pages = o.Result.Pages
			j.Fields = &o.Result.Fields
			if cfg.Output.IncludeText {
				j.Text = o.Result.Text
			}
		}
		encoded = append(encoded, j)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if len(encoded) == 1 {
		return enc.Encode(encoded[0])
	}
	return enc.Encode(encoded)
}

func writeText(w io.Writer, cfg *config.Config, outputs []fileOutput) error {
	for i, o := range outputs {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s:\n", o.Path)
		if o.Err != nil {
			fmt.Fprintf(w, "  error: %v\n", o.Err)
			continue
		}
		printField(w, "total", o.Result.Fields.Total)
		printField(w, "date", o.Result.Fields.Date)
		printField(w, "vendor", o.Result.Fields.Vendor)
		printField(w, "gstin", o.Result.Fields.GSTIN)
		printField(w, "invoice_number", o.Result.Fields.InvoiceNumber)
		printField(w, "cgst", o.Result.Fields.CGST)
		printField(w, "sgst", o.Result.Fields.SGST)
		printField(w, "igst", o.Result.Fields.IGST)
		if len(o.Result.Fields.HSNCodes) > 0 {
			fmt.Fprintf(w, "  hsn_codes: %v\n", o.Result.Fields.HSNCodes)
		} else {
			fmt.Fprintf(w, "  hsn_codes: -\n")
		}
		fmt.Fprintf(w, "  confidence: %.1f", o.Result.Confidence)
		if o.Result.LowConfidence {
			fmt.Fprintf(w, " (low)")
		}
		fmt.Fprintln(w)
		if o.Result.Pages > 0 {
			fmt.Fprintf(w, "  pages: %d\n", o.Result.Pages)
		}
		if cfg.Output.IncludeText {
			fmt.Fprintf(w, "  text:\n%s\n", indent(o.Result.Text, "    "))
		}
	}
	return nil
}

func printField(w io.Writer, name string, v *string) {
	if v != nil {
		fmt.Fprintf(w, "  %s: %s\n", name, *v)
	} else {
		fmt.Fprintf(w, "  %s: -\n", name)
	}
}

func indent(s, prefix string) string {
	if s == "" {
		return prefix + "(empty)"
	}
	return prefix + strings.ReplaceAll(s, "\n", "\n"+prefix)
}
