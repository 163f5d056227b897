package corpus

import (
	"context"
	"log/slog"

	"github.com/abadojack/whatlanggo"

	"github.com/crimson-sun/genreprep/internal/model"
)

// LanguageFilter drops records whose detected language is not Lang.
type LanguageFilter struct {
	Source Source
	// Lang is an ISO 639-1 code such as "en". Empty disables filtering.
	Lang string
	Log  *slog.Logger
}

func (f LanguageFilter) Records(ctx context.Context) ([]model.Record, error) {
	records, err := f.Source.Records(ctx)
	if err != nil || f.Lang == "" {
		return records, err
	}
	kept := make([]model.Record, 0, len(records))
	for _, r := range records {
		if Language(r.Text) == f.Lang {
			kept = append(kept, r)
		}
	}
	log := f.Log
	if log == nil {
		log = slog.Default()
	}
	log.Debug("language filter", "lang", f.Lang, "in", len(records), "kept", len(kept))
	return kept, nil
}

// Language returns the ISO 639-1 code detected for text, or "" when the
// detector has no two-letter code for it.
func Language(text string) string {
	return whatlanggo.Detect(text).Lang.Iso6391()
}
