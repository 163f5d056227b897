package onnx

import (
	"fmt"
	"path/filepath"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// runtime guards the process-wide ONNX Runtime environment.
var runtime struct {
	once sync.Once
	err  error
}

func initRuntime(libPath string) error {
	runtime.once.Do(func() {
		ort.SetSharedLibraryPath(libPath)
		runtime.err = ort.InitializeEnvironment()
	})
	return runtime.err
}

var bertInputs = []string{"input_ids", "attention_mask", "token_type_ids"}

// session runs a BERT-style encoder that emits [batch, seq, dim] hidden states.
type session struct {
	sess   *ort.DynamicAdvancedSession
	output string
	dim    int64
}

// openSession loads modelPath. The runtime library is expected next to the
// model unless libPath is given.
func openSession(modelPath, libPath string, threads int) (*session, error) {
	if libPath == "" {
		libPath = filepath.Join(filepath.Dir(modelPath), "libonnxruntime.so")
	}
	if err := initRuntime(libPath); err != nil {
		return nil, fmt.Errorf("onnx: init runtime: %w", err)
	}

	inputs, outputs, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		return nil, fmt.Errorf("onnx: read model info: %w", err)
	}
	if err := checkInputs(inputs); err != nil {
		return nil, err
	}
	if len(outputs) == 0 {
		return nil, fmt.Errorf("onnx: model has no outputs")
	}
	dims := outputs[0].Dimensions
	if len(dims) != 3 || dims[2] <= 0 {
		return nil, fmt.Errorf("onnx: expected [batch, seq, dim] output, got %v", dims)
	}

	opts, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("onnx: session options: %w", err)
	}
	defer opts.Destroy()
	if threads > 0 {
		opts.SetIntraOpNumThreads(threads)
	}
	opts.SetInterOpNumThreads(1)

	s, err := ort.NewDynamicAdvancedSession(modelPath, bertInputs, []string{outputs[0].Name}, opts)
	if err != nil {
		return nil, fmt.Errorf("onnx: create session: %w", err)
	}
	return &session{sess: s, output: outputs[0].Name, dim: dims[2]}, nil
}

func checkInputs(inputs []ort.InputOutputInfo) error {
	have := make(map[string]bool, len(inputs))
	for _, in := range inputs {
		have[in.Name] = true
	}
	for _, name := range bertInputs {
		if !have[name] {
			return fmt.Errorf("onnx: model missing input %q", name)
		}
	}
	return nil
}

// run returns the flat [size*seqLen*dim] hidden states for b.
func (s *session) run(b batch) ([]float32, error) {
	shape := ort.NewShape(b.size, b.seqLen)
	var values []ort.Value
	defer func() {
		for _, v := range values {
			v.Destroy()
		}
	}()
	for _, data := range [][]int64{b.inputIDs, b.attentionMask, b.tokenTypeIDs} {
		t, err := ort.NewTensor(shape, data)
		if err != nil {
			return nil, fmt.Errorf("onnx: input tensor: %w", err)
		}
		values = append(values, t)
	}

	out, err := ort.NewEmptyTensor[float32](ort.NewShape(b.size, b.seqLen, s.dim))
	if err != nil {
		return nil, fmt.Errorf("onnx: output tensor: %w", err)
	}
	defer out.Destroy()

	if err := s.sess.Run(values, []ort.Value{out}); err != nil {
		return nil, fmt.Errorf("onnx: inference: %w", err)
	}
	return append([]float32(nil), out.GetData()...), nil
}

func (s *session) close() error {
	return s.sess.Destroy()
}
