package genre

import (
	"github.com/samber/lo"

	"github.com/crimson-sun/genreprep/internal/model"
)

// Selector filters records by the genre policy. Inclusive filtering always
// runs; with RequireSingleLabel the survivors must also carry exactly one
// label after intersection.
type Selector struct {
	index              *Index
	requireSingleLabel bool
}

// NewSelector creates a Selector over the given index.
func NewSelector(index *Index, requireSingleLabel bool) *Selector {
	return &Selector{index: index, requireSingleLabel: requireSingleLabel}
}

// Select returns the surviving records in input order with Genres replaced by
// the selected labels. Invalid records are dropped.
func (s *Selector) Select(records []model.Record) []model.Record {
	out := s.Inclusive(records)
	if s.requireSingleLabel {
		out = Unique(out)
	}
	return out
}

// Inclusive keeps records whose genres intersect the index. The label set
// becomes the intersection, in the record's own genre order.
func (s *Selector) Inclusive(records []model.Record) []model.Record {
	out := make([]model.Record, 0, len(records))
	for _, r := range records {
		if !r.Valid() {
			continue
		}
		kept := lo.Uniq(lo.Filter(r.Genres, func(g string, _ int) bool {
			return s.index.Contains(g)
		}))
		if len(kept) == 0 {
			continue
		}
		out = append(out, model.Record{Genres: kept, Text: r.Text})
	}
	return out
}

// Unique keeps only records carrying exactly one genre.
func Unique(records []model.Record) []model.Record {
	return lo.Filter(records, func(r model.Record, _ int) bool {
		return r.Valid() && len(r.Genres) == 1
	})
}
