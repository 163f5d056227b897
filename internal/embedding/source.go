package embedding

import "context"

// Source yields a Lookup able to cover the given vocabulary tokens. Static
// tables ignore the tokens; model-backed sources embed exactly those tokens.
type Source interface {
	Resolve(ctx context.Context, tokens []string) (Lookup, error)
}

type staticSource struct {
	lookup Lookup
}

// Static wraps a fixed Lookup as a Source.
func Static(l Lookup) Source {
	return staticSource{lookup: l}
}

func (s staticSource) Resolve(context.Context, []string) (Lookup, error) {
	return s.lookup, nil
}

// FileSource loads a text table from path when resolved.
type FileSource struct {
	Path string
}

func (f FileSource) Resolve(ctx context.Context, _ []string) (Lookup, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t, err := LoadTextFile(f.Path)
	if err != nil {
		return nil, err
	}
	return t, nil
}
