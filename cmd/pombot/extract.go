package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/MJBeltran13/ai-chatbot-shop/internal/catalog"
	"github.com/MJBeltran13/ai-chatbot-shop/internal/document"
)

var (
	extractFormat     string
	extractPath       string
	extractSupplement string
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Print what the extractor finds in the catalog documents",
	Long: `Runs the catalog extractor over the configured documents and prints the
products, services and sections it found, so catalog authors can check a
document before it goes live.`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractFormat, "format", "f", "yaml", "output format: yaml or json")
	extractCmd.Flags().StringVar(&extractPath, "file", "", "catalog document (overrides catalog.path)")
	extractCmd.Flags().StringVar(&extractSupplement, "supplement", "", "supplementary text file (overrides catalog.supplement_path)")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	path, supplement := cfg.Catalog.Path, cfg.Catalog.SupplementPath
	if extractPath != "" {
		path, supplement = extractPath, extractSupplement
	}
	doc, err := document.NewLoader(path, supplement, log).Load(ctx)
	if err != nil {
		return fmt.Errorf("read documents: %w", err)
	}
	return writeReport(cmd.OutOrStdout(), catalog.Build(doc.Text, doc.Supplement).Report(), extractFormat)
}

func writeReport(w io.Writer, r catalog.Report, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(r)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(r)
	default:
		return fmt.Errorf("unknown format %q (want yaml or json)", format)
	}
}
