// Package report computes and prints corpus statistics at each preparation
// stage: genre frequencies before and after selection, and text lengths.
package report

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"

	"github.com/crimson-sun/genreprep/internal/genre"
	"github.com/crimson-sun/genreprep/internal/model"
	"github.com/crimson-sun/genreprep/internal/text"
	"github.com/crimson-sun/genreprep/internal/vocab"
)

// Lengths summarises a list of lengths.
type Lengths struct {
	Min int
	Avg float64
	Max int
}

// MeasureLengths returns min/avg/max of values, zero for an empty list.
func MeasureLengths(values []int) Lengths {
	if len(values) == 0 {
		return Lengths{}
	}
	return Lengths{
		Min: lo.Min(values),
		Avg: float64(lo.Sum(values)) / float64(len(values)),
		Max: lo.Max(values),
	}
}

// GenreCounts ranks the genres of records by frequency, ties in first-seen
// order. top <= 0 keeps all of them.
func GenreCounts(records []model.Record, top int) []vocab.Count {
	counts := vocab.CountTokens(lo.Map(records, func(r model.Record, _ int) []string { return r.Genres }))
	if top > 0 && len(counts) > top {
		counts = counts[:top]
	}
	return counts
}

// Stats is the per-stage view of a corpus.
type Stats struct {
	Records  int
	Raw      []vocab.Count
	Selected []vocab.Count
	// Unique is set only when single-label selection applies.
	Unique      []vocab.Count
	Kept        int
	Chars       Lengths
	Documents   int
	Tokens      Lengths
	SingleLabel bool
}

// Collect runs selection and cleaning over records and gathers Stats. top
// bounds the raw genre table.
func Collect(ctx context.Context, records []model.Record, sel *genre.Selector, singleLabel bool, cleaner *text.Cleaner, top int) (Stats, error) {
	s := Stats{Records: len(records), SingleLabel: singleLabel}
	s.Raw = GenreCounts(records, top)

	selected := sel.Inclusive(records)
	s.Selected = GenreCounts(selected, 0)
	if singleLabel {
		selected = genre.Unique(selected)
		s.Unique = GenreCounts(selected, 0)
	}
	s.Kept = len(selected)
	s.Chars = MeasureLengths(lo.Map(selected, func(r model.Record, _ int) int {
		return utf8.RuneCountInString(r.Text)
	}))

	docs, err := cleaner.Clean(ctx, selected)
	if err != nil {
		return Stats{}, fmt.Errorf("report: %w", err)
	}
	s.Documents = len(docs)
	s.Tokens = MeasureLengths(lo.Map(docs, func(d model.Document, _ int) int { return len(d.Tokens) }))
	return s, nil
}

// Render prints s as a series of tables.
func Render(w io.Writer, s Stats) {
	fmt.Fprintf(w, "records: %d\n\nraw genres (top %d)\n", s.Records, len(s.Raw))
	countTable(w, s.Raw)

	fmt.Fprintf(w, "\nselected genres\n")
	countTable(w, s.Selected)

	if s.SingleLabel {
		fmt.Fprintf(w, "\nsingle-label genres\n")
		countTable(w, s.Unique)
	}

	fmt.Fprintf(w, "\nlengths\n")
	t := newTable(w)
	t.SetHeader([]string{"Stage", "Rows", "Unit", "Min", "Avg", "Max"})
	t.Append(lengthRow("selected", s.Kept, "chars", s.Chars))
	t.Append(lengthRow("cleaned", s.Documents, "tokens", s.Tokens))
	t.Render()
}

func countTable(w io.Writer, counts []vocab.Count) {
	t := newTable(w)
	t.SetHeader([]string{"Genre", "Count"})
	for _, c := range counts {
		t.Append([]string{c.Token, strconv.Itoa(c.Freq)})
	}
	t.Render()
}

func lengthRow(stage string, rows int, unit string, l Lengths) []string {
	return []string{stage, strconv.Itoa(rows), unit, strconv.Itoa(l.Min), strconv.FormatFloat(l.Avg, 'f', 2, 64), strconv.Itoa(l.Max)}
}

func newTable(w io.Writer) *tablewriter.Table {
	t := tablewriter.NewWriter(w)
	t.SetAutoWrapText(false)
	t.SetAutoFormatHeaders(false)
	t.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	return t
}
