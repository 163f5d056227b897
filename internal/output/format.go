package output

import "github.com/crimson-sun/genreprep/internal/model"

// Manifest is the compact description of a dataset: its metadata and split
// sizes without any of the per-row arrays.
type Manifest struct {
	Meta      model.Meta `json:"meta"`
	TrainRows int        `json:"train_rows"`
	TestRows  int        `json:"test_rows"`
}

// NewManifest summarises ds.
func NewManifest(ds *model.Dataset) Manifest {
	return Manifest{
		Meta:      ds.Meta,
		TrainRows: ds.Train.Len(),
		TestRows:  ds.Test.Len(),
	}
}

// WithoutEmbedding returns a shallow copy of ds with the embedding matrix
// dropped, for destinations that store the matrix elsewhere or not at all.
func WithoutEmbedding(ds *model.Dataset) *model.Dataset {
	cp := *ds
	cp.Embedding = nil
	return &cp
}
