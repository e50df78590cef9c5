package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/a3tai/mcp-benford/internal/analysis"
	"github.com/a3tai/mcp-benford/internal/config"
	"github.com/a3tai/mcp-benford/internal/pdf"
	"github.com/a3tai/mcp-benford/internal/report"
)

// analyzeOptions holds the flag values of the root command.
type analyzeOptions struct {
	format      string
	timeout     time.Duration
	tables      bool
	maxFileSize int64
	output      string
	verbose     bool
}

// NewRootCmd creates the root command for benford_analyze.
func NewRootCmd() *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "benford_analyze [flags] <pdf>",
		Short: "Test the numbers in a PDF against Benford's Law",
		Long: `benford_analyze extracts every number printed in a PDF, counts their leading
digits and compares the counts with the distribution predicted by Benford's Law.

Numbers starting with 0 are ignored. The verdict uses a two-sided z-test at the
5% level of significance. Documents without any numbers produce a warning
instead of a verdict.`,
		Version:       getVersion(),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", config.DefaultReportFormat,
		fmt.Sprintf("Report format (%s)", strings.Join(report.Formats(), ", ")))
	cmd.Flags().DurationVarP(&opts.timeout, "timeout", "t", config.DefaultTimeout, "Processing time limit")
	cmd.Flags().BoolVar(&opts.tables, "tables", false, "Extract tables from the PDF")
	cmd.Flags().Int64Var(&opts.maxFileSize, "max-file-size", config.DefaultMaxFileSize, "Maximum PDF size in bytes")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// runAnalyze analyses one PDF and renders the report
func runAnalyze(ctx context.Context, stdout io.Writer, path string, opts *analyzeOptions) error {
	format, err := report.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	if opts.timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	if opts.verbose {
		log.SetOutput(os.Stderr)
	} else {
		log.SetOutput(io.Discard)
	}

	pdfService, err := pdf.NewService(opts.maxFileSize, filepath.Dir(absPath))
	if err != nil {
		return err
	}
	analyzer, err := analysis.NewService(pdfService, analysis.Options{
		Timeout: opts.timeout,
		Debug:   opts.verbose,
	})
	if err != nil {
		return err
	}

	result, err := analyzer.Analyze(ctx, analysis.Request{
		Path:          filepath.Base(absPath),
		IncludeTables: opts.tables,
	})
	if err != nil {
		var analysisErr *analysis.Error
		if errors.As(err, &analysisErr) {
			return errors.New(analysisErr.UserMessage())
		}
		return err
	}

	out := stdout
	if opts.output != "" {
		file, err := os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()
		out = file
	}

	return report.Render(out, result, format)
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
