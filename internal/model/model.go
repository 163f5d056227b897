package model

import "time"

// Record is one raw corpus entry: a summary text tagged with genre labels.
type Record struct {
	Genres []string
	Text   string
}

// Valid reports whether the record carries both genres and text.
func (r Record) Valid() bool {
	return len(r.Genres) > 0 && r.Text != ""
}

// Document is the cleaned form of a Record. In single-label mode Labels has
// exactly one element.
type Document struct {
	Labels []string
	Tokens []string
}

// Matrix is a dense row-major float32 matrix.
type Matrix struct {
	Rows int
	Cols int
	Data []float32
}

// NewMatrix allocates a zeroed rows×cols matrix.
func NewMatrix(rows, cols int) *Matrix {
	return &Matrix{Rows: rows, Cols: cols, Data: make([]float32, rows*cols)}
}

// Row returns the i-th row as a slice aliasing the matrix storage.
func (m *Matrix) Row(i int) []float32 {
	return m.Data[i*m.Cols : (i+1)*m.Cols]
}

// Split holds the per-document arrays of one partition. LabelCodes is filled
// in single-label mode, LabelSets in multi-label mode.
type Split struct {
	LabelCodes []int       `json:"label_codes,omitempty"`
	LabelSets  [][]int     `json:"label_sets,omitempty"`
	Sequences  [][]int     `json:"sequences"`
	Prevalence [][]float64 `json:"prevalence"`
}

// Len returns the number of rows in the split.
func (s Split) Len() int {
	return len(s.Sequences)
}

// Meta describes how a Dataset was produced.
type Meta struct {
	RunID             string    `json:"run_id"`
	CreatedAt         time.Time `json:"created_at"`
	Documents         int       `json:"documents"`
	SequenceLength    int       `json:"sequence_length"`
	VocabularySize    int       `json:"vocabulary_size"`
	EmbeddingDim      int       `json:"embedding_dim,omitempty"`
	EmbeddingCoverage float64   `json:"embedding_coverage,omitempty"`
	Standardized      bool      `json:"standardized"`
	SingleLabel       bool      `json:"single_label"`
	Seed              *uint64   `json:"seed,omitempty"`
}

// Dataset is the final bundle handed to a training collaborator.
type Dataset struct {
	Meta       Meta           `json:"meta"`
	Train      Split          `json:"train"`
	Test       Split          `json:"test"`
	Vocabulary map[string]int `json:"vocabulary"`
	Embedding  *Matrix        `json:"embedding,omitempty"`
}
