package genre

// DefaultBooks returns the genre labels used for the book summary corpus.
// Labels match the Freebase genre names carried by the corpus verbatim.
func DefaultBooks() []string {
	return []string{
		"Science Fiction",
		"Fantasy",
		"Mystery",
		"Crime Fiction",
		"Historical novel",
		"Horror",
		"Thriller",
		"Young adult literature",
		"Children's literature",
		"Romance novel",
	}
}

// DefaultMovies returns the genre labels used for the movie plot corpus,
// whose genre column is lower-case.
func DefaultMovies() []string {
	return []string{
		"drama",
		"documentary",
		"comedy",
		"horror",
		"thriller",
		"action",
		"western",
		"romance",
		"sci-fi",
		"adventure",
	}
}

// Defaults returns the built-in label list for a corpus source name, or nil
// when the source has none.
func Defaults(source string) []string {
	switch source {
	case "books":
		return DefaultBooks()
	case "movies":
		return DefaultMovies()
	default:
		return nil
	}
}
