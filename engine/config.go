package engine

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Configuration options
type Algorithm string

const (
	AlphaBetaAlgorithm Algorithm = "alphabeta"
	MiniMaxAlgorithm   Algorithm = "minimax"
)

const (
	DualPreset    = "dual"
	ClassicPreset = "classic"
	DefaultPreset = DualPreset
)

type SearchConfig struct {
	Algorithm Algorithm `yaml:"algorithm" validate:"oneof=alphabeta minimax"`
	// Abort a search that runs longer than this and play the best move found so
	// far; 0 means no deadline.
	MoveDeadline time.Duration `yaml:"move_deadline" validate:"gte=0"`
}

type Config struct {
	Preset string       `yaml:"preset" validate:"omitempty,oneof=dual classic"`
	Eval   EvalConfig   `yaml:"eval"`
	Time   TimePolicy   `yaml:"time"`
	Search SearchConfig `yaml:"search"`
}

var configValidate = validator.New()

// Preset returns a fresh copy of the named configuration bundle.
func Preset(name string) (Config, error) {
	switch name {
	case DualPreset:
		return Config{
			Preset: DualPreset,
			Eval: EvalConfig{
				Middlegame:       PieceValues{Pawn: 126, Knight: 781, Bishop: 825, Rook: 1276, Queen: 2536},
				Endgame:          PieceValues{Pawn: 208, Knight: 854, Bishop: 915, Rook: 1380, Queen: 2682},
				PhaseRule:        PhaseMaterial,
				EndgameThreshold: 3915,
			},
			Time: TimePolicy{
				Thresholds: []DepthThreshold{
					{Max: 5 * time.Second, Depth: 1},
					{Max: 15 * time.Second, Depth: 2},
					{Max: 30 * time.Second, Depth: 3},
				},
				MaxDepth: 4,
			},
			Search: SearchConfig{Algorithm: AlphaBetaAlgorithm},
		}, nil

	case ClassicPreset:
		values := PieceValues{Pawn: 100, Knight: 320, Bishop: 330, Rook: 500, Queen: 900}
		return Config{
			Preset: ClassicPreset,
			Eval: EvalConfig{
				Middlegame:    values,
				Endgame:       values,
				PhaseRule:     PhaseMinorCount,
				ScarcityBonus: 50,
			},
			Time: TimePolicy{
				Thresholds: []DepthThreshold{
					{Max: 15 * time.Second, Depth: 1},
					{Max: 30 * time.Second, Depth: 2},
					{Max: 180 * time.Second, Depth: 3},
				},
				MaxDepth: 4,
			},
			Search: SearchConfig{Algorithm: AlphaBetaAlgorithm},
		}, nil
	}

	return Config{}, errors.Wrapf(ErrInvalidConfig, "unknown preset %q", name)
}

func DefaultConfig() Config {
	cfg, _ := Preset(DefaultPreset)
	return cfg
}

// LoadConfig reads a YAML config file. The file's preset (dual if absent) supplies
// every value the file leaves out.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "reading config %s", path)
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (Config, error) {
	var header struct {
		Preset string `yaml:"preset"`
	}
	if err := yaml.Unmarshal(data, &header); err != nil {
		return Config{}, errors.Wrap(ErrInvalidConfig, err.Error())
	}
	if header.Preset == "" {
		header.Preset = DefaultPreset
	}

	cfg, err := Preset(header.Preset)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(ErrInvalidConfig, err.Error())
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks everything New would trip over, so bad files fail at startup.
func (cfg *Config) Validate() error {
	if err := configValidate.Struct(cfg); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}
	if err := cfg.Time.check(); err != nil {
		return err
	}
	_, err := buildSquareTables(cfg.Eval.Tables)
	return err
}
