// docxgen is a small development utility around the docx package. It writes
// the built-in sample document (the one the accessibility rules were tuned
// against) and renders .docx files to HTML for quick inspection.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"docremedy/internal/docx"
)

func main() {
	root := &cobra.Command{
		Use:   "docxgen",
		Short: "Generate and inspect DOCX test documents",
	}
	root.AddCommand(sampleCmd(), renderCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func sampleCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write the built-in sample document with known accessibility issues",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := docx.SampleDocument().Bytes()
			if err != nil {
				return fmt.Errorf("build sample document: %w", err)
			}
			if err := os.WriteFile(out, b, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", out, len(b))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "sample.docx", "output file path")
	return cmd
}

func renderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <file.docx>",
		Short: "Render a document to HTML on stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			d, err := docx.Parse(b)
			if err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}
			res := d.Render()
			fmt.Fprintln(cmd.OutOrStdout(), res.HTML)
			for _, m := range res.Messages {
				fmt.Fprintln(cmd.ErrOrStderr(), "note:", m)
			}
			return nil
		},
	}
	return cmd
}
