// internal/importer/report.go
//
// Machine-readable report emitted after every run that reaches the summary
// stage.  The report is a side artifact: a failed write never rolls back
// data the batch already committed.
package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Report is the persisted outcome of one import run.
type Report struct {
	Timestamp      time.Time      `json:"timestamp"`
	DataSource     string         `json:"dataSource"`
	TotalRecords   int            `json:"totalRecords"`
	SuccessCount   int            `json:"successCount"`
	DuplicateCount int            `json:"duplicateCount"`
	ErrorCount     int            `json:"errorCount"`
	Irregularities []Irregularity `json:"irregularities"`
	Errors         []RecordError  `json:"errors"`
}

// Write saves the report as indented JSON.
func (r *Report) Write(path string) error {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// Summary renders the console block printed at the end of a run.  Long
// irregularity and error lists are elided; the full lists live in the
// report file.
func (r *Report) Summary() string {
	var b strings.Builder
	line := strings.Repeat("=", 37)

	fmt.Fprintf(&b, "%s\nImport Summary\n%s\n", line, line)
	fmt.Fprintf(&b, "Total records: %d\n", r.TotalRecords)
	fmt.Fprintf(&b, "Successfully imported: %d\n", r.SuccessCount)
	fmt.Fprintf(&b, "Duplicates skipped: %d\n", r.DuplicateCount)
	fmt.Fprintf(&b, "Errors: %d\n", r.ErrorCount)
	fmt.Fprintf(&b, "Irregularities found: %d\n%s\n", len(r.Irregularities), line)

	if len(r.Irregularities) > 0 {
		b.WriteString("\nIrregularities:\n")
		for i, irr := range r.Irregularities {
			if i == 20 {
				fmt.Fprintf(&b, "  ... and %d more\n", len(r.Irregularities)-20)
				break
			}
			fmt.Fprintf(&b, "  Record %d: %s\n", irr.Record, irr.Issue)
		}
	}
	if len(r.Errors) > 0 {
		b.WriteString("\nErrors:\n")
		for i, re := range r.Errors {
			if i == 10 {
				fmt.Fprintf(&b, "  ... and %d more\n", len(r.Errors)-10)
				break
			}
			fmt.Fprintf(&b, "  Record %d: %s\n", re.Record, re.Error)
		}
	}
	return b.String()
}
