package genreprep_test

import (
	"context"
	"fmt"
	"log"

	"github.com/crimson-sun/genreprep/pkg/genreprep"
)

func Example() {
	p, err := genreprep.New(
		genreprep.WithGenres("Drama", "Comedy"),
		genreprep.WithSingleLabel(true),
		genreprep.WithTokenLength(3, 500),
		genreprep.WithSplit(1, 0),
		genreprep.WithSeed(1),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer p.Close()

	ds, err := p.Prepare(context.Background(), []genreprep.Record{
		{Genres: []string{"Drama"}, Text: "A sad story of loss."},
		{Genres: []string{"Comedy", "Drama"}, Text: "A funny tale."},
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("labels:", ds.Train.LabelCodes)
	fmt.Println("sequence:", ds.Train.Sequences[0])
	fmt.Println("prevalence:", ds.Train.Prevalence[0])
	// Output:
	// labels: [0]
	// sequence: [1 2 3 4 5]
	// prevalence: [0.2 0.2 0.2 0.2 0.2]
}
