// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package eval

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// resultsHeader fixes the results-table columns and their order.
var resultsHeader = []string{
	"config", "type", "groups_included", "runs",
	"accuracy", "within_1_acc", "mae_bins", "mae_months",
}

// WriteResults writes the tab-delimited results table. Row order is
// preserved exactly as given (catalogue order, then declaration order
// within each catalogue); the ordering is part of the report's
// readability contract.
func WriteResults(path string, rows []Row) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating results directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating results table %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = '\t'
	if err := w.Write(resultsHeader); err != nil {
		return fmt.Errorf("writing results header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.Experiment.Name,
			string(row.Experiment.Catalogue),
			strings.Join(row.Experiment.Groups.Sorted(), ","),
			strconv.Itoa(row.Runs),
			fmt.Sprintf("%.2f", row.Metrics.Accuracy),
			fmt.Sprintf("%.2f", row.Metrics.Within1Accuracy),
			fmt.Sprintf("%.3f", row.Metrics.MAEBuckets),
			fmt.Sprintf("%.2f", row.Metrics.MAEMonths),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing results row %s: %w", row.Experiment.Name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing results table %s: %w", path, err)
	}
	return nil
}
