package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/compliscan/compliscan/internal/extract"
	"github.com/spf13/cobra"
)

// parseCmd represents the parse command.
var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Extract structured fields from already-recognized text",
	Long: `Run field extraction on plain text, skipping recognition entirely.
Reads from the given file, or from stdin when no file is provided.

Useful for inspecting extraction behavior on text recognized elsewhere.

Examples:
  compliscan parse dump.txt
  cat dump.txt | compliscan parse`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			data []byte
			err  error
		)
		if len(args) == 1 {
			data, err = os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
		} else {
			data, err = io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
		}
		if len(data) == 0 {
			return errors.New("no input text provided")
		}

		fields := extract.Parse(string(data))

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(fields)
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
