package stdout

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/crimson-sun/genreprep/internal/model"
	"github.com/crimson-sun/genreprep/internal/output"
)

func TestWriteManifest(t *testing.T) {
	var buf bytes.Buffer
	s := NewWriter(&buf, false)

	ds := &model.Dataset{
		Meta:  model.Meta{RunID: "run-9", Documents: 3},
		Train: model.Split{Sequences: [][]int{{1}, {2}}, Prevalence: [][]float64{{1}, {1}}},
		Test:  model.Split{Sequences: [][]int{{1}}, Prevalence: [][]float64{{1}}},
	}
	if err := s.Write(context.Background(), ds); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	var m output.Manifest
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if m.Meta.RunID != "run-9" || m.TrainRows != 2 || m.TestRows != 1 {
		t.Errorf("manifest = %+v", m)
	}
	if strings.Count(buf.String(), "\n") != 1 {
		t.Errorf("expected a single line, got %q", buf.String())
	}
}

func TestWritePretty(t *testing.T) {
	var buf bytes.Buffer
	s := NewWriter(&buf, true)
	if err := s.Write(context.Background(), &model.Dataset{}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\n  \"meta\"") {
		t.Errorf("expected indented output, got %q", buf.String())
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
}
