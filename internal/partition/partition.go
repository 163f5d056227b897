// Package partition shuffles parallel per-document arrays with one shared
// permutation and slices them into train and test sets.
package partition

import (
	"fmt"
	"math/rand/v2"

	perrors "github.com/crimson-sun/genreprep/internal/errors"
	"github.com/crimson-sun/genreprep/internal/model"
)

// Permutation returns a uniform permutation of [0, n). A nil seed draws from
// the runtime's random source; a fixed seed always yields the same order.
func Permutation(n int, seed *uint64) []int {
	if seed == nil {
		return rand.Perm(n)
	}
	r := rand.New(rand.NewPCG(*seed, *seed))
	return r.Perm(n)
}

// Gather returns out where out[i] = in[perm[i]].
func Gather[T any](in []T, perm []int) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(perm))
	for i, p := range perm {
		out[i] = in[p]
	}
	return out
}

// Sizes is the requested train/test row count.
type Sizes struct {
	Train int
	Test  int
}

// Check fails when the split asks for more rows than n.
func (s Sizes) Check(n int) error {
	if s.Train < 0 || s.Test < 0 {
		return fmt.Errorf("partition: %w: negative split size %d/%d", perrors.ErrInvalidConfig, s.Train, s.Test)
	}
	if s.Train+s.Test > n {
		return fmt.Errorf("partition: %w: train %d + test %d > %d documents",
			perrors.ErrSplitTooLarge, s.Train, s.Test, n)
	}
	return nil
}

// Split permutes every populated array of all with the same permutation and
// slices the first Train rows into train and the next Test rows into test.
// Rows beyond Train+Test are discarded.
func Split(all model.Split, sizes Sizes, seed *uint64) (train, test model.Split, err error) {
	n := all.Len()
	if err := checkAligned(all); err != nil {
		return model.Split{}, model.Split{}, err
	}
	if err := sizes.Check(n); err != nil {
		return model.Split{}, model.Split{}, err
	}

	perm := Permutation(n, seed)
	shuffled := model.Split{
		LabelCodes: Gather(all.LabelCodes, perm),
		LabelSets:  Gather(all.LabelSets, perm),
		Sequences:  Gather(all.Sequences, perm),
		Prevalence: Gather(all.Prevalence, perm),
	}
	train = slice(shuffled, 0, sizes.Train)
	test = slice(shuffled, sizes.Train, sizes.Train+sizes.Test)
	return train, test, nil
}

func checkAligned(s model.Split) error {
	n := len(s.Sequences)
	if len(s.Prevalence) != n {
		return fmt.Errorf("partition: prevalence has %d rows, sequences has %d", len(s.Prevalence), n)
	}
	if l := len(s.LabelCodes); l != 0 && l != n {
		return fmt.Errorf("partition: label codes has %d rows, sequences has %d", l, n)
	}
	if l := len(s.LabelSets); l != 0 && l != n {
		return fmt.Errorf("partition: label sets has %d rows, sequences has %d", l, n)
	}
	return nil
}

func slice(s model.Split, from, to int) model.Split {
	return model.Split{
		LabelCodes: window(s.LabelCodes, from, to),
		LabelSets:  window(s.LabelSets, from, to),
		Sequences:  window(s.Sequences, from, to),
		Prevalence: window(s.Prevalence, from, to),
	}
}

func window[T any](in []T, from, to int) []T {
	if in == nil {
		return nil
	}
	return in[from:to:to]
}
