package engine

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lane-runner/internal/config"
)

// ErrInvalidOptions is wrapped by every construction failure.
var ErrInvalidOptions = errors.New("engine: invalid options")

// Options configures a new engine.
type Options struct {
	Width  float64 // Viewport width in world units
	Height float64 // Viewport height in world units

	Config    *config.RunnerConfig // nil = config.DefaultRunnerConfig()
	Variant   Variant
	Seed      int64
	HighScore int // Persisted high score read by the host

	// Assets reports what the host resolved for custom artwork.
	// nil means the placeholder sizes from Config are used.
	Assets *AssetInfo

	Logger *log.Logger // nil = discard
}

// AssetInfo describes the artwork the host loaded.
type AssetInfo struct {
	Available bool         // false when loading failed
	Sizes     config.Sizes // Bounding boxes matching the artwork
}

// resolveSizes picks the bounding boxes for every entity kind.
func resolveSizes(cfg *config.RunnerConfig, assets *AssetInfo, logger *log.Logger) (config.Sizes, error) {
	placeholders := cfg.Sizes()
	if assets == nil {
		return placeholders, nil
	}

	s := assets.Sizes
	broken := !assets.Available ||
		!s.Player.Valid() || !s.Traffic.Valid() || !s.Pickup.Valid() || !s.PowerUp.Valid()
	if !broken {
		return s, nil
	}
	if !cfg.Assets.UseDefaultsIfBroken {
		return config.Sizes{}, fmt.Errorf("%w: assets unavailable and fallback to defaults disabled", ErrInvalidOptions)
	}
	logger.Debug("assets unavailable, using placeholder sizes", "available", assets.Available)
	return placeholders, nil
}

// validViewport reports whether both dimensions are finite and positive.
func validViewport(width, height float64) bool {
	return width > 0 && height > 0 && !math.IsInf(width, 0) && !math.IsInf(height, 0)
}

func (o Options) validate() (config.RunnerConfig, error) {
	if !validViewport(o.Width, o.Height) {
		return config.RunnerConfig{}, fmt.Errorf("%w: viewport %gx%g", ErrInvalidOptions, o.Width, o.Height)
	}
	cfg := config.DefaultRunnerConfig()
	if o.Config != nil {
		cfg = *o.Config
	}
	if err := cfg.Validate(); err != nil {
		return config.RunnerConfig{}, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	return cfg, nil
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.New(io.Discard)
}
