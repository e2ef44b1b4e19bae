package lanerunner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/engine"
)

const (
	maxSpriteBytes = 16 << 10
	fetchTimeout   = 5 * time.Second
)

// ErrEmptySprite is returned for artwork without a single visible cell.
var ErrEmptySprite = errors.New("lanerunner: empty sprite")

// Sprite is text art drawn over an entity's bounding box.
// Spaces are transparent.
type Sprite struct {
	Rows [][]rune
	W, H int
}

// ParseSprite reads text art. Trailing blank lines are dropped and the
// width is the longest row.
func ParseSprite(r io.Reader) (Sprite, error) {
	var s Sprite
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		s.Rows = append(s.Rows, []rune(line))
		s.W = max(s.W, utf8.RuneCountInString(line))
	}
	if err := sc.Err(); err != nil {
		return Sprite{}, fmt.Errorf("lanerunner: read sprite: %w", err)
	}
	for len(s.Rows) > 0 && strings.TrimSpace(string(s.Rows[len(s.Rows)-1])) == "" {
		s.Rows = s.Rows[:len(s.Rows)-1]
	}
	s.H = len(s.Rows)
	if s.W == 0 || s.H == 0 {
		return Sprite{}, ErrEmptySprite
	}
	return s, nil
}

// Size returns the bounding box the engine should use for this sprite.
func (s Sprite) Size() config.Size {
	return config.Size{W: float64(s.W), H: float64(s.H)}
}

// LoadSprite loads text art from a file path or an http(s) URL.
func LoadSprite(ctx context.Context, src string) (Sprite, error) {
	var r io.Reader
	switch {
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
		defer cancel()
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
		if err != nil {
			return Sprite{}, fmt.Errorf("lanerunner: sprite request: %w", err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return Sprite{}, fmt.Errorf("lanerunner: fetch sprite: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return Sprite{}, fmt.Errorf("lanerunner: fetch sprite %s: %s", src, resp.Status)
		}
		r = resp.Body
	default:
		f, err := os.Open(strings.TrimPrefix(src, "file://"))
		if err != nil {
			return Sprite{}, fmt.Errorf("lanerunner: open sprite: %w", err)
		}
		defer f.Close()
		r = f
	}
	return ParseSprite(io.LimitReader(r, maxSpriteBytes))
}

// artwork holds the sprites resolved for one engine.
type artwork struct {
	player  *Sprite
	traffic *Sprite
}

// loadArtwork resolves the configured sprites. It returns nil AssetInfo when
// no artwork is configured, so the engine uses its placeholder sizes.
func loadArtwork(ctx context.Context, cfg config.RunnerConfig) (artwork, *engine.AssetInfo) {
	a := cfg.Assets
	if a.PlayerURL == "" && a.TrafficURL == "" {
		return artwork{}, nil
	}

	info := &engine.AssetInfo{Available: true, Sizes: cfg.Sizes()}
	var art artwork
	load := func(src string, dst **Sprite, size *config.Size) {
		if src == "" {
			return
		}
		s, err := LoadSprite(ctx, src)
		if err != nil {
			logger.Warn("sprite unavailable", "src", src, "err", err)
			info.Available = false
			return
		}
		*dst = &s
		*size = s.Size()
	}
	load(a.PlayerURL, &art.player, &info.Sizes.Player)
	load(a.TrafficURL, &art.traffic, &info.Sizes.Traffic)

	if !info.Available {
		// The engine falls back to placeholders (or refuses to start);
		// either way the sprites no longer match the boxes.
		return artwork{}, info
	}
	return art, info
}
