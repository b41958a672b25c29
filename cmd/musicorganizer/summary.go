package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/pkazmierczak/musicorganizer/internal"
)

// report is the machine readable result of a run.
type report struct {
	Total     int                       `json:"total"`
	Organized int                       `json:"organized"`
	Conflicts []internal.ConflictRecord `json:"conflicts"`
	Errors    []internal.ErrorRecord    `json:"errors"`
}

func newReport(b *internal.Batch) report {
	return report{
		Total:     b.Total,
		Organized: b.Count(internal.Organized),
		Conflicts: b.Conflicts(),
		Errors:    b.Errors(),
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderCounts(b *internal.Batch) string {
	return renderTable(
		[]string{"Outcome", "Songs"},
		[][]string{
			{"organized", strconv.Itoa(b.Count(internal.Organized))},
			{"skipped", strconv.Itoa(b.Count(internal.Conflicted))},
			{"errors", strconv.Itoa(b.Count(internal.Errored))},
			{"total", strconv.Itoa(b.Total)},
		},
		[]columnAlignment{alignLeft, alignRight},
	)
}

func renderConflicts(conflicts []internal.ConflictRecord) string {
	rows := make([][]string, 0, len(conflicts))
	for _, c := range conflicts {
		rows = append(rows, []string{c.FileName, c.NewLocationDir})
	}
	return renderTable([]string{"File", "Already in"}, rows, nil)
}

func renderErrors(errs []internal.ErrorRecord) string {
	rows := make([][]string, 0, len(errs))
	for _, e := range errs {
		rows = append(rows, []string{e.FileName, orDash(e.ArtistFound), orDash(e.AlbumFound), e.Error})
	}
	return renderTable([]string{"File", "Artist", "Album", "Error"}, rows, nil)
}

func orDash(s *string) string {
	if s == nil {
		return "-"
	}
	if *s == "" {
		return `""`
	}
	return *s
}

// printSummary writes the human readable result of a run.
func printSummary(w io.Writer, b *internal.Batch) {
	fmt.Fprintln(w, renderCounts(b))
	if conflicts := b.Conflicts(); len(conflicts) > 0 {
		fmt.Fprintln(w, "\nSkipped, already in the library:")
		fmt.Fprintln(w, renderConflicts(conflicts))
	}
	if errs := b.Errors(); len(errs) > 0 {
		fmt.Fprintln(w, "\nCould not organize:")
		fmt.Fprintln(w, renderErrors(errs))
	}
}
