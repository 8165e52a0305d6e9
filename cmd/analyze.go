package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/compscan/internal/analysis"
)

var (
	analyzeAddress  string
	analyzeRadius   float64
	analyzeCSV      string
	analyzeXLSX     string
	analyzeTaxonomy string
	analyzeJSON     bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a competitor analysis for a business address",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		analyzer, err := initAnalyzer(analyzeTaxonomy)
		if err != nil {
			return err
		}

		radius := analyzeRadius
		if radius == 0 {
			radius = cfg.Search.RadiusMiles
		}
		if radius < 1 || radius > 25 {
			return eris.Errorf("radius %.1f out of range (1-25 miles)", radius)
		}

		result, err := analyzer.Run(ctx, analyzeAddress, radius)
		if err != nil {
			return eris.Wrap(err, "analysis run")
		}

		if analyzeCSV != "" {
			if err := analysis.ExportCSV(result, analyzeCSV); err != nil {
				return err
			}
			zap.L().Info("csv report written", zap.String("path", analyzeCSV))
		}
		if analyzeXLSX != "" {
			if err := analysis.ExportXLSX(result, analyzeXLSX); err != nil {
				return err
			}
			zap.L().Info("xlsx report written", zap.String("path", analyzeXLSX))
		}

		if analyzeJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		printSummary(result)
		return nil
	},
}

// printSummary renders a human-readable digest of one analysis run.
func printSummary(result *analysis.Result) {
	s := result.Summary

	fmt.Printf("Competitor analysis for %s (%.1f mi radius)\n", result.Address, result.RadiusMiles)
	fmt.Printf("Competitors found: %d\n", s.TotalCompetitors)
	if s.HasRatingData {
		fmt.Printf("Average rating:    %.1f\n", s.AverageRating)
	} else {
		fmt.Println("Average rating:    no rating data")
	}
	fmt.Printf("Total reviews:     %d\n", s.TotalReviews)
	if s.Closest != nil {
		fmt.Printf("Closest:           %s (%.2f mi)\n", s.Closest.Name, s.Closest.DistanceMiles)
	}
	if result.Partial {
		fmt.Println("Note: results are partial; some competitors could not be retrieved.")
	}

	if len(s.ServiceGaps) > 0 {
		fmt.Println("\nService gaps (under-served nearby):")
		for _, gap := range s.ServiceGaps {
			fmt.Printf("  %-22s %d of %d competitors\n", gap.Service, gap.Offered, gap.Total)
		}
	}

	if len(s.ComplaintFrequency) > 0 {
		fmt.Println("\nTop complaints across competitors:")
		top := s.ComplaintFrequency
		if len(top) > 5 {
			top = top[:5]
		}
		for _, kc := range top {
			fmt.Printf("  %-22s %d\n", kc.Keyword, kc.Count)
		}
	}

	fmt.Println("\nCompetitors by distance:")
	for _, c := range result.Competitors {
		fmt.Printf("  %-32s %5.2f mi  %.1f★ (%d reviews)\n", c.Name, c.DistanceMiles, c.Rating, c.ReviewCount)
	}
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeAddress, "address", "", "business address to analyze (required)")
	analyzeCmd.Flags().Float64Var(&analyzeRadius, "radius", 0, "search radius in miles, 1-25 (default from config)")
	analyzeCmd.Flags().StringVar(&analyzeCSV, "csv", "", "write per-competitor CSV report to this path")
	analyzeCmd.Flags().StringVar(&analyzeXLSX, "xlsx", "", "write XLSX workbook to this path")
	analyzeCmd.Flags().StringVar(&analyzeTaxonomy, "taxonomy", "", "YAML taxonomy override file")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the full result as JSON instead of a summary")
	_ = analyzeCmd.MarkFlagRequired("address")
	rootCmd.AddCommand(analyzeCmd)
}
