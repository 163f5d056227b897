package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	env "github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	perrors "github.com/crimson-sun/genreprep/internal/errors"
)

// Config holds every knob of a dataset build. Values are layered: defaults,
// then an optional TOML file, then GENREPREP_* environment variables (a .env
// file in the working directory is honoured), then command-line flags.
type Config struct {
	// Corpus.
	Source   string   `toml:"source" env:"GENREPREP_SOURCE" validate:"required"`
	Inputs   []string `toml:"inputs" validate:"dive,required"`
	Language string   `toml:"language" env:"GENREPREP_LANGUAGE" validate:"omitempty,len=2"`

	// Labels. An empty Genres list falls back to the source's defaults.
	Genres             []string `toml:"genres" validate:"dive,required"`
	RequireSingleLabel bool     `toml:"require_single_label" env:"GENREPREP_REQUIRE_SINGLE_LABEL"`

	// Text.
	Tokenizer      string `toml:"tokenizer" env:"GENREPREP_TOKENIZER" validate:"oneof=manual linguistic"`
	MinTokenLength int    `toml:"min_token_length" env:"GENREPREP_MIN_TOKEN_LENGTH" validate:"gte=0"`
	MaxTokenLength int    `toml:"max_token_length" env:"GENREPREP_MAX_TOKEN_LENGTH" validate:"gte=0"`
	Workers        int    `toml:"workers" env:"GENREPREP_WORKERS" validate:"gte=0"`

	// Vocabulary and encoding.
	DropTopFrequent int  `toml:"drop_top_frequent" env:"GENREPREP_DROP_TOP_FREQUENT" validate:"gte=0"`
	KeepTopCount    int  `toml:"keep_top_count" env:"GENREPREP_KEEP_TOP_COUNT" validate:"gte=0"`
	Standardize     bool `toml:"standardize" env:"GENREPREP_STANDARDIZE"`

	// Partition.
	TrainSize int    `toml:"train_size" env:"GENREPREP_TRAIN_SIZE" validate:"gte=0"`
	TestSize  int    `toml:"test_size" env:"GENREPREP_TEST_SIZE" validate:"gte=0"`
	Seed      *int64 `toml:"seed" env:"GENREPREP_SEED" validate:"omitempty,gte=0"`

	// Embeddings: "none", "text" (GloVe layout file) or "onnx".
	Embedding     string `toml:"embedding" env:"GENREPREP_EMBEDDING" validate:"oneof=none text onnx"`
	EmbeddingPath string `toml:"embedding_path" env:"GENREPREP_EMBEDDING_PATH" validate:"required_if=Embedding text"`
	EmbeddingDim  int    `toml:"embedding_dim" env:"GENREPREP_EMBEDDING_DIM" validate:"gte=0"`
	ModelPath     string `toml:"model_path" env:"GENREPREP_MODEL_PATH" validate:"required_if=Embedding onnx"`
	VocabPath     string `toml:"vocab_path" env:"GENREPREP_VOCAB_PATH" validate:"required_if=Embedding onnx"`
	RuntimePath   string `toml:"runtime_path" env:"GENREPREP_ONNX_RUNTIME"`

	// Outputs. With neither set, build prints a manifest to stdout.
	OutputFile string `toml:"output_file" env:"GENREPREP_OUTPUT_FILE"`
	OutputKV   string `toml:"output_kv" env:"GENREPREP_OUTPUT_KV"`
	Pretty     bool   `toml:"pretty" env:"GENREPREP_OUTPUT_PRETTY"`

	LogLevel  string `toml:"log_level" env:"GENREPREP_LOG_LEVEL"`
	LogFormat string `toml:"log_format" env:"GENREPREP_LOG_FORMAT" validate:"oneof=text json"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Source:         "books",
		Tokenizer:      "manual",
		MinTokenLength: 10,
		MaxTokenLength: 500,
		KeepTopCount:   10000,
		TrainSize:      4000,
		TestSize:       1000,
		Embedding:      "none",
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// Load builds a Config from defaults, the TOML file at path (skipped when
// path is empty), a .env file if present, and the environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load .env: %w", err)
	}
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: environment: %w", err)
	}
	// Lists are comma-separated in the environment.
	if v := os.Getenv("GENREPREP_INPUTS"); v != "" {
		cfg.Inputs = splitList(v)
	}
	if v := os.Getenv("GENREPREP_GENRES"); v != "" {
		cfg.Genres = splitList(v)
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

var validate = validator.New()

// Validate checks field constraints and the relations between fields.
func (c Config) Validate() error {
	var errs []error
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				errs = append(errs, fmt.Errorf("%s: failed %q (value %v)", strings.ToLower(fe.Field()), fe.Tag(), fe.Value()))
			}
		} else {
			errs = append(errs, err)
		}
	}
	if c.MaxTokenLength > 0 && c.MinTokenLength > c.MaxTokenLength {
		errs = append(errs, fmt.Errorf("mintokenlength %d exceeds maxtokenlength %d", c.MinTokenLength, c.MaxTokenLength))
	}
	if c.KeepTopCount > 0 && c.KeepTopCount <= c.DropTopFrequent {
		errs = append(errs, fmt.Errorf("keeptopcount %d must exceed droptopfrequent %d", c.KeepTopCount, c.DropTopFrequent))
	}
	if c.TrainSize+c.TestSize == 0 {
		errs = append(errs, fmt.Errorf("trainsize and testsize are both zero"))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("config: %w: %w", perrors.ErrInvalidConfig, errors.Join(errs...))
}

// SeedValue returns the seed as the partitioner expects it, or nil.
func (c Config) SeedValue() *uint64 {
	if c.Seed == nil {
		return nil
	}
	s := uint64(*c.Seed)
	return &s
}
