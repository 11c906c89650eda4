package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"uninews/internal/crawl"
)

// OutputFormat specifies the summary output format.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// runSummary is the JSON shape of a run summary.
type runSummary struct {
	FinishedAt     time.Time `json:"finished_at"`
	SitesProcessed int       `json:"sites_processed"`
	SitesFailed    int       `json:"sites_failed"`
	Inserted       int       `json:"records_inserted"`
	Deleted        int       `json:"records_deleted"`
}

// WriteSummary writes the per-run summary in the specified format.
func WriteSummary(w io.Writer, summary crawl.Summary, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, summary)
	case FormatText:
		return writeText(w, summary)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeJSON(w io.Writer, summary crawl.Summary) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(runSummary{
		FinishedAt:     time.Now().UTC(),
		SitesProcessed: summary.SitesProcessed,
		SitesFailed:    summary.SitesFailed,
		Inserted:       summary.Inserted,
		Deleted:        summary.Deleted,
	})
}

func writeText(w io.Writer, summary crawl.Summary) error {
	_, err := fmt.Fprintf(w, "Processed %d site(s) (%d failed), inserted %d record(s), deleted %d dead link(s).\n",
		summary.SitesProcessed, summary.SitesFailed, summary.Inserted, summary.Deleted)
	return err
}
