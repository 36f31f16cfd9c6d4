package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dgallion1/regsect/internal/doctree"
	"github.com/dgallion1/regsect/internal/extract"
	"github.com/dgallion1/regsect/internal/structure"
)

var sectionTitle string

type summarizeOutput struct {
	Title   string `json:"title" yaml:"title"`
	Page    int    `json:"page" yaml:"page"`
	Model   string `json:"model" yaml:"model"`
	Content string `json:"content" yaml:"content"`
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize FILE",
	Short: "Extract one section and refine it with a language model",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.ValidateSummarizer(); err != nil {
			return err
		}

		out, err := extractFile(args[0])
		if err != nil {
			return err
		}
		section, ok := findSection(out.Sections, sectionTitle)
		if !ok {
			return fmt.Errorf("no section matching %q in %s", sectionTitle, args[0])
		}

		s, err := extract.New(extract.Settings{
			Provider:  cfg.SummarizerProvider,
			APIKey:    cfg.SummarizerAPIKey(),
			Model:     cfg.SummarizerModel(),
			BaseURL:   cfg.SummarizerBaseURL(),
			MaxTokens: cfg.SummaryMaxTokens,
		})
		if err != nil {
			return err
		}

		log.Info("summarizing section", "title", section.Title, "model", s.Model())
		content, err := s.Summarize(cmd.Context(), section.Title, section.Text)
		if err != nil {
			return err
		}

		return writeOutput(cmd.OutOrStdout(), outputFormat, summarizeOutput{
			Title:   section.Title,
			Page:    section.Page,
			Model:   s.Model(),
			Content: content,
		})
	},
}

func init() {
	summarizeCmd.Flags().StringVar(&sectionTitle, "section", "", "section title to summarize")
	_ = summarizeCmd.MarkFlagRequired("section")
}

// findSection prefers an exact title match and falls back to the first
// title containing want, ignoring case.
func findSection(sections []doctree.Section, want string) (doctree.Section, bool) {
	want = strings.TrimSpace(want)
	if want == "" {
		return doctree.Section{}, false
	}
	for _, s := range sections {
		if s.Title == want {
			return s, true
		}
	}
	if matches := structure.Filter(sections, want); len(matches) > 0 {
		return matches[0], true
	}
	return doctree.Section{}, false
}
