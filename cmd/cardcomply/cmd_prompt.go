package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cardcomply/internal/compliance"
	"cardcomply/internal/reference"
)

var promptFlags struct {
	issuer     string
	text       []string
	references string
}

var promptCmd = &cobra.Command{
	Use:       "prompt image|text",
	Short:     "Print the composed image or text prompt",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"image", "text"},
	RunE:      runPrompt,
}

func init() {
	f := promptCmd.Flags()
	f.StringVar(&promptFlags.issuer, "issuer", "", "Issuer key (default: configured default issuer)")
	f.StringArrayVar(&promptFlags.text, "text", nil, "Copy to embed in the text prompt (repeatable)")
	f.StringVar(&promptFlags.references, "references", "", "Directory of reference documents")
}

func runPrompt(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	_, logger, catalog, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	key := catalog.Key(promptFlags.issuer)
	profile, ok := catalog.Lookup(key)
	if !ok {
		return fmt.Errorf("unknown issuer %q", key)
	}
	repo := reference.NewMemoryRepository()
	if promptFlags.references != "" {
		if _, err := reference.LoadDir(ctx, repo, promptFlags.references, key); err != nil {
			return err
		}
	}
	refText := reference.NewProvider(repo, logger, reference.DefaultMaxTextChars).GetReferenceText(ctx, key)

	composer := compliance.NewPromptComposer(profile)
	var prompt string
	switch args[0] {
	case "image":
		prompt = composer.ImagePrompt(refText)
	case "text":
		prompt = composer.TextPrompt(strings.Join(promptFlags.text, "\n"), refText)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "--- system ---")
	fmt.Fprintln(out, compliance.SystemInstruction)
	fmt.Fprintln(out, "--- prompt ---")
	fmt.Fprintln(out, prompt)
	return nil
}
