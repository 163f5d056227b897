package embedding

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	perrors "github.com/crimson-sun/genreprep/internal/errors"
)

// Table is an in-memory word→vector lookup.
type Table struct {
	vectors map[string][]float32
	dim     int
}

// NewTable builds a Table from a map. Every vector must have the same length.
func NewTable(vectors map[string][]float32) (*Table, error) {
	t := &Table{vectors: make(map[string][]float32, len(vectors))}
	for w, v := range vectors {
		if err := t.add(w, v); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Table) add(word string, vec []float32) error {
	if t.dim == 0 {
		t.dim = len(vec)
	} else if len(vec) != t.dim {
		return fmt.Errorf("embedding: %w: %q has %d values, table has %d",
			perrors.ErrDimensionMismatch, word, len(vec), t.dim)
	}
	t.vectors[word] = vec
	return nil
}

func (t *Table) Vector(token string) ([]float32, bool) {
	v, ok := t.vectors[token]
	return v, ok
}

func (t *Table) Dim() int {
	return t.dim
}

// Len returns the number of words in the table.
func (t *Table) Len() int {
	return len(t.vectors)
}

// LoadText reads a whitespace-separated text table (GloVe layout): one word
// per line followed by its coefficients. Blank lines are skipped. A line
// whose coefficient count differs from the first line is fatal.
func LoadText(r io.Reader) (*Table, error) {
	t := &Table{vectors: make(map[string][]float32)}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		vec := make([]float32, len(fields)-1)
		for i, f := range fields[1:] {
			x, err := strconv.ParseFloat(f, 32)
			if err != nil {
				return nil, fmt.Errorf("embedding: line %d: %w", line, err)
			}
			vec[i] = float32(x)
		}
		if len(vec) == 0 {
			return nil, fmt.Errorf("embedding: line %d: %w: no coefficients for %q",
				line, perrors.ErrDimensionMismatch, fields[0])
		}
		if err := t.add(fields[0], vec); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("embedding: read error: %w", err)
	}
	return t, nil
}

// LoadTextFile opens path and reads it with LoadText.
func LoadTextFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("embedding: %w", err)
	}
	defer f.Close()
	return LoadText(f)
}
