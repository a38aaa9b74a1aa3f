package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/mtga/draft/analytics"
)

// RecordsFilename is the CSV file holding the flat card records of a set.
func RecordsFilename(setCode string) string {
	return fmt.Sprintf("draft_data_%s.csv", strings.ToLower(setCode))
}

// AnalysisFilename is the JSON file holding the summary of a set.
func AnalysisFilename(setCode string) string {
	return fmt.Sprintf("draft_analysis_%s.json", strings.ToLower(setCode))
}

// ReportFilename is the HTML chart report of a set.
func ReportFilename(setCode string) string {
	return fmt.Sprintf("draft_report_%s.html", strings.ToLower(setCode))
}

// BatchFiles lists the files written for a batch.
type BatchFiles struct {
	Records  string
	Analysis string
}

// WriteBatch writes the records CSV and summary JSON of a batch into dir.
func WriteBatch(dir, setCode string, records []analytics.Record, summary analytics.Summary, opts Options) (*BatchFiles, error) {
	files := &BatchFiles{
		Records:  filepath.Join(dir, RecordsFilename(setCode)),
		Analysis: filepath.Join(dir, AnalysisFilename(setCode)),
	}

	csvExporter := NewExporter(Options{
		Format:    FormatCSV,
		FilePath:  files.Records,
		Overwrite: opts.Overwrite,
	})
	if err := csvExporter.Export(records); err != nil {
		return nil, fmt.Errorf("failed to write records: %w", err)
	}

	jsonExporter := NewExporter(Options{
		Format:     FormatJSON,
		FilePath:   files.Analysis,
		PrettyJSON: opts.PrettyJSON,
		Overwrite:  opts.Overwrite,
	})
	if err := jsonExporter.Export(summary); err != nil {
		return nil, fmt.Errorf("failed to write analysis: %w", err)
	}

	return files, nil
}

// ReadAnalysis loads a summary written by WriteBatch.
func ReadAnalysis(path string) (analytics.Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read analysis: %w", err)
	}

	var summary analytics.Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("failed to parse analysis %s: %w", path, err)
	}
	return summary, nil
}
