package analysis

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// reportColumns defines the ordered per-competitor report columns.
var reportColumns = []string{
	"Company",
	"Distance (mi)",
	"Rating",
	"Reviews",
	"Phone",
	"Website",
	"Services",
	"Pricing Info",
	"Positive Keywords",
	"Negative Keywords",
	"Review Themes",
	"Pricing Found",
	"Top Complaints",
}

// ExportCSV writes the per-competitor table as a CSV file.
func ExportCSV(result *Result, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return eris.Wrap(err, "export: create csv file")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(reportColumns); err != nil {
		return eris.Wrap(err, "export: write csv header")
	}
	for _, c := range result.Competitors {
		if err := w.Write(buildReportRow(c)); err != nil {
			return eris.Wrap(err, "export: write csv row")
		}
	}

	return nil
}

// ExportXLSX writes the per-competitor table plus a summary sheet as an
// XLSX workbook.
func ExportXLSX(result *Result, outputPath string) error {
	file := xlsx.NewFile()

	sheet, err := file.AddSheet("Competitors")
	if err != nil {
		return eris.Wrap(err, "export: add competitors sheet")
	}
	header := sheet.AddRow()
	for _, col := range reportColumns {
		header.AddCell().Value = col
	}
	for _, c := range result.Competitors {
		row := sheet.AddRow()
		for _, val := range buildReportRow(c) {
			row.AddCell().Value = val
		}
	}

	summary, err := file.AddSheet("Summary")
	if err != nil {
		return eris.Wrap(err, "export: add summary sheet")
	}
	for _, kv := range summaryRows(result) {
		row := summary.AddRow()
		row.AddCell().Value = kv[0]
		row.AddCell().Value = kv[1]
	}

	if err := file.Save(outputPath); err != nil {
		return eris.Wrap(err, "export: save xlsx")
	}
	return nil
}

// buildReportRow maps a Competitor to one report row.
func buildReportRow(c Competitor) []string {
	website := c.Website
	if website == notAvailable {
		website = "N/A"
	}

	pricingFound := "No"
	if len(c.PricingInfo) > 0 {
		pricingFound = "Yes"
	}

	return []string{
		c.Name,
		strconv.FormatFloat(c.DistanceMiles, 'f', 2, 64),
		strconv.FormatFloat(c.Rating, 'f', 1, 64),
		strconv.Itoa(c.ReviewCount),
		c.Phone,
		website,
		joinOr(c.Services, "Services not specified"),
		joinOr(c.PricingInfo, "No pricing found"),
		joinOr(capped(c.PositiveKeywords, 10), "None found"),
		joinOr(capped(c.NegativeKeywords, 10), "None found"),
		formatThemes(c.ReviewThemes),
		pricingFound,
		joinOr(capped(c.NegativeKeywords, 3), "None"),
	}
}

func summaryRows(result *Result) [][2]string {
	s := result.Summary

	avg := "no data"
	if s.HasRatingData {
		avg = strconv.FormatFloat(s.AverageRating, 'f', 1, 64)
	}
	closest := "n/a"
	if s.Closest != nil {
		closest = fmt.Sprintf("%s (%.2f mi)", s.Closest.Name, s.Closest.DistanceMiles)
	}
	partial := "no"
	if result.Partial {
		partial = "yes"
	}

	return [][2]string{
		{"Address", result.Address},
		{"Radius (mi)", strconv.FormatFloat(result.RadiusMiles, 'f', 1, 64)},
		{"Total Competitors", strconv.Itoa(s.TotalCompetitors)},
		{"Average Rating", avg},
		{"Total Reviews", strconv.Itoa(s.TotalReviews)},
		{"Closest Competitor", closest},
		{"Partial Results", partial},
	}
}

// formatThemes renders up to five themes as "name(count)" ordered by count
// descending, then name, matching the frequency ranking order.
func formatThemes(themes map[string]int) string {
	if len(themes) == 0 {
		return "No themes identified"
	}

	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if themes[names[i]] != themes[names[j]] {
			return themes[names[i]] > themes[names[j]]
		}
		return names[i] < names[j]
	})

	if len(names) > 5 {
		names = names[:5]
	}
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s(%d)", name, themes[name]))
	}
	return strings.Join(parts, "; ")
}

func joinOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, "; ")
}

func capped(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
