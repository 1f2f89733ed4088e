package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/SCMGuru254/tenderbridge-sub003/internal/ats"
	"github.com/SCMGuru254/tenderbridge-sub003/internal/logger"
	"github.com/SCMGuru254/tenderbridge-sub003/internal/services"
)

const (
	formatText = "text"
	formatJSON = "json"
)

type scoreOptions struct {
	jobDescriptionFile string
	format             string
	concurrency        int
}

type scoredFile struct {
	File   string              `json:"file"`
	Format services.Format     `json:"format,omitempty"`
	Result *ats.AnalysisResult `json:"result,omitempty"`
	Error  string              `json:"error,omitempty"`
}

func newScoreCmd(root *rootOptions) *cobra.Command {
	opts := &scoreOptions{}

	cmd := &cobra.Command{
		Use:   "score <file>...",
		Short: "Score local PDF, DOCX or text CVs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(cmd.Context(), root, opts, args, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.jobDescriptionFile, "job-description-file", "", "file holding a job description to compare against")
	cmd.Flags().StringVar(&opts.format, "format", formatText, "output format: text or json")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 4, "files scored in parallel")

	return cmd
}

func runScore(ctx context.Context, root *rootOptions, opts *scoreOptions, files []string, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.format != formatText && opts.format != formatJSON {
		return fmt.Errorf("unknown format %q, want %s or %s", opts.format, formatText, formatJSON)
	}
	if opts.concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", opts.concurrency)
	}

	config, err := root.getConfig()
	if err != nil {
		return err
	}

	log, err := root.logger(config)
	if err != nil {
		return fmt.Errorf("creating a logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	dict, err := root.dictionary(config)
	if err != nil {
		return err
	}

	var jobDescription string
	if opts.jobDescriptionFile != "" {
		raw, err := os.ReadFile(opts.jobDescriptionFile)
		if err != nil {
			return fmt.Errorf("reading job description: %w", err)
		}
		jobDescription = string(raw)
		log.Debug("comparing against job description", zap.String("job_description", logger.Truncate(jobDescription, 80)))
	}

	scorer := ats.NewScorer(dict)
	parser := services.NewDocumentParser()
	results := make([]scoredFile, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.concurrency)

	for i, file := range files {
		g.Go(func() error {
			// failures are collected per file; the group never cancels
			results[i] = scoreFile(gctx, parser, scorer, file, jobDescription)
			if results[i].Error != "" {
				log.Warn("failed to score file", zap.String("file", file), zap.String("error", results[i].Error))
			} else {
				log.Debug("file scored", zap.String("file", file), zap.Int("overall", results[i].Result.Score.Overall))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := render(out, opts.format, results); err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be scored", failed, len(files))
	}
	return nil
}

func scoreFile(ctx context.Context, parser services.DocumentParser, scorer *ats.Scorer, file, jobDescription string) scoredFile {
	res := scoredFile{File: file}

	if err := ctx.Err(); err != nil {
		res.Error = err.Error()
		return res
	}

	data, err := os.ReadFile(file)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	text, format, err := parser.Parse(file, data)
	res.Format = format
	if err != nil {
		res.Error = err.Error()
		return res
	}

	result := scorer.Analyze(text, jobDescription)
	res.Result = &result
	return res
}

func render(out io.Writer, format string, results []scoredFile) error {
	if format == formatJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(out)
		}
		if r.Error != "" {
			fmt.Fprintf(out, "%s: error: %s\n", r.File, r.Error)
			continue
		}

		s := r.Result.Score
		fmt.Fprintf(out, "%s (%s)\n", r.File, r.Format)
		fmt.Fprintf(out, "  overall %d  keywords %d  formatting %d  sections %d  readability %d\n",
			s.Overall, s.Keywords, s.Formatting, s.Sections, s.Readability)
		if len(r.Result.MissingKeywords) > 0 {
			fmt.Fprintf(out, "  missing keywords: %s\n", strings.Join(r.Result.MissingKeywords, ", "))
		}
		if len(r.Result.JobKeywordMatches) > 0 {
			fmt.Fprintf(out, "  job keyword matches: %s\n", strings.Join(r.Result.JobKeywordMatches, ", "))
		}
		writeList(out, "suggestions", r.Result.Suggestions)
		writeList(out, "issues", r.Result.Issues)
	}
	return nil
}

func writeList(out io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(out, "  %s:\n", title)
	for _, item := range items {
		fmt.Fprintf(out, "    - %s\n", item)
	}
}
