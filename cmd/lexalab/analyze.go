package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jonathan/lexalab/internal/config"
	"github.com/jonathan/lexalab/internal/observability"
	"github.com/jonathan/lexalab/internal/phrases"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze text for weak phrasing",
	Long:  "Scans text from --text, --file or stdin and prints the weak phrases found together with a suggested rewrite.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runAnalyze(analyzeOpts, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

// analyzeOptions holds the flags of the analyze command.
type analyzeOptions struct {
	Text        string
	File        string
	Industry    string
	Goal        string
	PhrasesFile string
	JSON        bool
	Diff        bool
}

var analyzeOpts analyzeOptions

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeOpts.Text, "text", "t", "", "Text to analyze")
	analyzeCmd.Flags().StringVarP(&analyzeOpts.File, "file", "f", "", "Path to a file whose contents are analyzed")
	analyzeCmd.Flags().StringVar(&analyzeOpts.Industry, "industry", "", "Industry to tailor the result note to")
	analyzeCmd.Flags().StringVar(&analyzeOpts.Goal, "goal", "", "Goal to tailor the result note to")
	analyzeCmd.Flags().StringVar(&analyzeOpts.PhrasesFile, "phrases", "", "Phrase catalog file (defaults to PHRASES_FILE or the built-in catalog)")
	analyzeCmd.Flags().BoolVar(&analyzeOpts.JSON, "json", false, "Print the analysis as JSON")
	analyzeCmd.Flags().BoolVar(&analyzeOpts.Diff, "diff", false, "Also print an inline diff of the rewrite")
	analyzeCmd.MarkFlagsMutuallyExclusive("text", "file")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(opts analyzeOptions, in io.Reader, out io.Writer) error {
	text, err := readInput(opts, in)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return errors.New("no text to analyze: use --text, --file or pipe text on stdin")
	}

	phrasesFile := opts.PhrasesFile
	if phrasesFile == "" {
		cfg, err := config.Load("", os.LookupEnv)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		phrasesFile = cfg.PhrasesFile
	}
	catalog, err := loadCatalog(phrasesFile)
	if err != nil {
		return err
	}

	result := phrases.NewAnalyzer(catalog).Analyze(text, phrases.Tailoring{
		Industry: opts.Industry,
		Goal:     opts.Goal,
	})

	if opts.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("failed to encode analysis: %w", err)
		}
		return nil
	}

	printer := observability.NewPrinter(out)
	printer.PrintAnalysis(&result)
	if opts.Diff {
		printer.PrintDiff(phrases.RewriteDiff(result.Input, result.Suggestion))
	}
	return nil
}

// readInput returns the text named by the flags, falling back to in.
func readInput(opts analyzeOptions, in io.Reader) (string, error) {
	switch {
	case opts.Text != "":
		return opts.Text, nil
	case opts.File != "":
		data, err := os.ReadFile(opts.File)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), nil
	default:
		data, err := io.ReadAll(in)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
}
