package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cardcomply/internal/compliance"
	"cardcomply/internal/config"
	"cardcomply/internal/csvexport"
	"cardcomply/internal/domain"
	"cardcomply/internal/generator"
	"cardcomply/internal/generator/providers"
	"cardcomply/internal/issuer"
	"cardcomply/internal/logging"
	"cardcomply/internal/port"
	"cardcomply/internal/reference"
)

var analyzeFlags struct {
	issuer     string
	images     []string
	text       []string
	headlines  []string
	references string
	demo       bool
	jsonOut    bool
	csvOut     bool
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze creative images and copy",
	Long: `Analyze runs the image and text compliance checks and prints one line per rule.

Examples:
  cardcomply analyze --issuer amex --image ad.png --text "Earn 5X points"
  cardcomply analyze --references ./guidelines --headline "Apply today" --json
  cardcomply analyze --demo
  cardcomply analyze --image ad.png --csv > findings.csv

The generator provider and API key are read from CARDCOMPLY_GENERATOR_* environment variables.`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVar(&analyzeFlags.issuer, "issuer", "", "Issuer key (default: configured default issuer)")
	f.StringArrayVar(&analyzeFlags.images, "image", nil, "Creative image file (repeatable)")
	f.StringArrayVar(&analyzeFlags.text, "text", nil, "Primary text (repeatable)")
	f.StringArrayVar(&analyzeFlags.headlines, "headline", nil, "Headline (repeatable)")
	f.StringVar(&analyzeFlags.references, "references", "", "Directory of reference documents (txt, md, html, xlsx)")
	f.BoolVar(&analyzeFlags.demo, "demo", false, "Return the demo findings without calling the generator")
	f.BoolVar(&analyzeFlags.jsonOut, "json", false, "Print the result as JSON")
	f.BoolVar(&analyzeFlags.csvOut, "csv", false, "Print the findings as CSV")
	analyzeCmd.MarkFlagsMutuallyExclusive("json", "csv")
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, logger, catalog, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	repo := reference.NewMemoryRepository()
	if analyzeFlags.references != "" {
		n, err := reference.LoadDir(ctx, repo, analyzeFlags.references, catalog.Key(analyzeFlags.issuer))
		if err != nil {
			return err
		}
		logger.Info("loaded reference documents", zap.Int("count", n))
	}

	images, err := readImages(analyzeFlags.images)
	if err != nil {
		return err
	}

	analyzer := compliance.NewAnalyzer(
		cliGenerator(&cfg.Generator, logger),
		reference.NewProvider(repo, logger, reference.DefaultMaxTextChars),
		catalog,
		compliance.WithLogger(logger),
	)

	if cfg.Analysis.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Analysis.RequestTimeout)
		defer cancel()
	}
	result, err := analyzer.Analyze(ctx, &domain.AnalysisRequest{
		Issuer:      analyzeFlags.issuer,
		Images:      images,
		PrimaryText: analyzeFlags.text,
		Headlines:   analyzeFlags.headlines,
		Demo:        analyzeFlags.demo,
	})
	if err != nil {
		return err
	}

	if analyzeFlags.jsonOut {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	if analyzeFlags.csvOut {
		return csvexport.WriteAll(cmd.OutOrStdout(), result.Results)
	}
	return printFindings(cmd.OutOrStdout(), result)
}

func setup() (*config.Config, *zap.Logger, *issuer.Catalog, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading config: %w", err)
	}
	// Keep stdout clean for results.
	cfg.Log.Level = "warn"
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, nil, err
	}
	catalog, err := issuer.Load(cfg.Analysis.IssuerCatalogPath, cfg.Analysis.DefaultIssuer)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, logger, catalog, nil
}

func cliGenerator(cfg *config.GeneratorConfig, logger *zap.Logger) port.TextGenerator {
	providers.RegisterAll()
	gen, err := generator.NewGenerator(cfg.PrimaryConfig())
	if err != nil {
		logger.Warn("no text generator", zap.Error(err))
		return nil
	}
	return gen
}

func readImages(paths []string) ([]domain.ImageAsset, error) {
	images := make([]domain.ImageAsset, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading image: %w", err)
		}
		contentType := http.DetectContentType(data)
		if !domain.AllowedImageContentTypes[contentType] {
			return nil, fmt.Errorf("%s: %w: %s", p, domain.ErrUnsupportedImageType, contentType)
		}
		images = append(images, domain.ImageAsset{Name: filepath.Base(p), ContentType: contentType, Data: data})
	}
	return images, nil
}

func printFindings(w io.Writer, result *domain.AnalysisResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if result.IsDemo {
		fmt.Fprintln(tw, "DEMO RESULT - no analysis was performed")
	}
	fmt.Fprintf(tw, "reference documents available: %d\n\n", result.ReferenceDocumentsAvailable)
	fmt.Fprintln(tw, "RULE\tSTATUS\tASSESS\tPASS\tDETAILS")
	for _, f := range result.Results {
		fmt.Fprintf(tw, "%s\t%s\t%d%%\t%d%%\t%s\n", f.Name, f.Status, f.AssessmentConfidence, f.PassConfidence, f.Details)
		for _, step := range f.ActionableSteps {
			fmt.Fprintf(tw, "\t\t\t\t- %s\n", step)
		}
	}
	return tw.Flush()
}
