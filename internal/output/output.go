package output

import (
	"context"

	"github.com/crimson-sun/genreprep/internal/model"
)

// Sink defines the interface for prepared dataset destinations.
type Sink interface {
	Write(ctx context.Context, ds *model.Dataset) error
	Close() error
}
