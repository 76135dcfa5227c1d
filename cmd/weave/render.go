package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/weave/internal/compiler"
	"github.com/aretw0/weave/internal/logging"
	"github.com/aretw0/weave/pkg/encoders"
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render a fragment document to markup",
	Long: `Reads a fragment document (YAML or JSON) and prints the rendered markup.
Use "-" or no argument to read from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		debug, _ := cmd.Flags().GetBool("debug")
		encName, _ := cmd.Flags().GetString("encoder")
		outPath, _ := cmd.Flags().GetString("out")
		preview, _ := cmd.Flags().GetBool("preview")

		level := slog.LevelWarn
		if debug {
			level = slog.LevelDebug
		}
		logger := logging.New(level)

		var (
			data []byte
			err  error
		)
		if len(args) == 0 || args[0] == "-" {
			data, err = io.ReadAll(os.Stdin)
		} else {
			data, err = os.ReadFile(args[0])
		}
		if err != nil {
			return fmt.Errorf("reading document: %w", err)
		}

		enc, encName, ok := encoders.ByName(encName)
		if !ok {
			return fmt.Errorf("unknown encoder %q (expected html, markdown, or none)", encName)
		}

		doc, err := compiler.Parse(data)
		if err != nil {
			return err
		}
		builder, err := doc.Build()
		if err != nil {
			return err
		}
		out, err := builder.Render(enc)
		if err != nil {
			return err
		}
		logger.Debug("Rendered document", "title", doc.Title, "encoder", encName, "bytes", len(out))

		if outPath != "" {
			return os.WriteFile(outPath, []byte(out), 0644)
		}

		if preview && encName == "markdown" && canPreview() {
			r, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
			if err == nil {
				if pretty, err := r.Render(out); err == nil {
					fmt.Print(pretty)
					return nil
				}
			}
			logger.Warn("Terminal preview unavailable, printing raw markdown")
		}

		fmt.Print(out)
		return nil
	},
}

// canPreview reports whether stdout is a color-capable terminal.
func canPreview() bool {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return false
	}
	return termenv.ColorProfile() != termenv.Ascii
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().String("encoder", "html", "Target markup: html, markdown, or none")
	renderCmd.Flags().String("out", "", "Write output to a file instead of stdout")
	renderCmd.Flags().Bool("preview", false, "Render markdown output for the terminal")
}
