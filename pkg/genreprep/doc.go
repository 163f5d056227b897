// Package genreprep prepares genre-tagged summaries (book blurbs, film plots)
// for a text classifier. It selects records by genre, tokenizes and filters
// them, builds a frequency-ranked vocabulary, and encodes every document as a
// padded index sequence and a word-prevalence vector, optionally with a
// pretrained embedding matrix aligned to the vocabulary.
//
// Quick start:
//
//	p, err := genreprep.New(
//	    genreprep.WithGenres("Fantasy", "Horror", "Science Fiction"),
//	    genreprep.WithSingleLabel(true),
//	    genreprep.WithSplit(8000, 2000),
//	    genreprep.WithSeed(42),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer p.Close()
//
//	ds, err := p.PrepareSource(ctx, "books", "booksummaries.txt")
//
// A Preparer holds no per-run state; Prepare may be called repeatedly.
package genreprep
