package lanerunner

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/lane-runner/internal/core"
	"github.com/vovakirdan/lane-runner/internal/engine"
)

// Visual characters for rendering
const (
	EdgeChar     = '▌'
	DividerChar  = '┆'
	BodyChar     = '█'
	PickupChar   = '●'
	SlowChar     = '≈'
	ShieldChar   = '◆'
	LifeChar     = '♥'
	LostLifeChar = '♡'
)

// Built-in art for the default 3x3 boxes.
var (
	playerArt  = Sprite{Rows: [][]rune{[]rune(" ▲ "), []rune("◢█◣"), []rune("▀ ▀")}, W: 3, H: 3}
	trafficArt = Sprite{Rows: [][]rune{[]rune("▄█▄"), []rune("███"), []rune("▀ ▀")}, W: 3, H: 3}
)

var trafficColors = []core.Color{core.ColorRed, core.ColorMagenta, core.ColorOrange, core.ColorBlue}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.eng == nil {
		return
	}
	s := g.eng.Snapshot()

	switch s.State {
	case engine.StateModeSelection:
		g.drawModeSelection(dst)
		return
	case engine.StateUsernameCreation:
		drawPanel(dst, core.ColorBrightCyan,
			"CHOOSE A USERNAME",
			"",
			fmt.Sprintf("%d-%d letters, digits or _", engine.MinUsernameLen, engine.MaxUsernameLen),
			"must start with a letter",
			"",
			"Enter to confirm  |  Esc to go back")
		return
	}

	g.drawRoad(dst, s)
	for i := range s.Entities {
		g.drawEntity(dst, &s.Entities[i])
	}
	g.drawPlayer(dst, s)
	g.drawHUD(dst, s)

	switch s.State {
	case engine.StateStartScreen:
		drawPanel(dst, core.ColorBrightYellow,
			"LANE RUNNER",
			"",
			"←/→ or A/D to change lanes",
			fmt.Sprintf("%c points   %c slow   %c shield   %c life", PickupChar, SlowChar, ShieldChar, LifeChar),
			"",
			"Press Enter to start")
	case engine.StatePaused:
		drawPanel(dst, core.ColorWhite, "PAUSED", "", "Press P to resume")
	case engine.StateGameOver:
		best := fmt.Sprintf("Best: %d", s.HighScore)
		if s.Score > 0 && s.Score >= s.HighScore {
			best = "New best!"
		}
		drawPanel(dst, core.ColorBrightRed,
			"GAME OVER",
			"",
			fmt.Sprintf("Score: %d  |  %s", s.Score, best),
			"",
			"Press R to restart")
	}
}

func (g *Game) drawModeSelection(dst *core.Screen) {
	casual, ranked := "  Casual  ", "  Leaderboard  "
	if g.cursor == core.ModeCasual {
		casual = "> Casual <"
	} else {
		ranked = "> Leaderboard <"
	}
	drawPanel(dst, core.ColorBrightYellow,
		"LANE RUNNER",
		"",
		casual+"    "+ranked,
		"",
		"←/→ to choose  |  Enter to confirm")
}

// drawRoad draws the road edges and the scrolling lane dividers.
func (g *Game) drawRoad(dst *core.Screen, s engine.Snapshot) {
	roadW := int(s.Geometry.Width)
	h := int(s.Geometry.Height)
	dst.DrawVLine(g.roadX-1, hudRows, h, EdgeChar, core.ColorGray)
	dst.DrawVLine(g.roadX+roadW, hudRows, h, EdgeChar, core.ColorGray)

	scroll := int(s.ElapsedMs * g.cfg.Traffic.BaseSpeed * s.SpeedFactor * s.SpeedMultiplier)
	laneW := s.Geometry.LaneWidth()
	for lane := 1; lane < s.Geometry.Lanes; lane++ {
		x := g.roadX + int(float64(lane)*laneW)
		for y := range h {
			if ((y-scroll)%4+4)%4 < 2 {
				dst.SetColored(x, y+hudRows, DividerChar, core.ColorGray)
			}
		}
	}
}

func (g *Game) drawEntity(dst *core.Screen, e *engine.Entity) {
	switch e.Kind {
	case engine.KindTraffic:
		c := trafficColors[int(e.ID)%len(trafficColors)]
		g.drawBox(dst, e.Box(), g.trafficSprite(), BodyChar, c)
	case engine.KindPickup:
		g.drawBox(dst, e.Box(), nil, PickupChar, core.ColorGreen)
	case engine.KindPowerUp:
		r, c := powerUpGlyph(e.PowerUp)
		g.drawBox(dst, e.Box(), nil, r, c)
	}
}

func (g *Game) drawPlayer(dst *core.Screen, s engine.Snapshot) {
	c := core.ColorCyan
	if s.Shield.Active {
		c = core.ColorBrightYellow
		// Blink during the last second.
		if s.Shield.RemainingMs < 1000 && int(s.Shield.RemainingMs/150)%2 == 1 {
			c = core.ColorCyan
		}
	}
	sprite := g.art.player
	if sprite == nil {
		sprite = &playerArt
	}
	g.drawBox(dst, s.Player.Box(), sprite, BodyChar, c)
}

func (g *Game) trafficSprite() *Sprite {
	if g.art.traffic != nil {
		return g.art.traffic
	}
	return &trafficArt
}

// drawBox draws an entity box, clipped to the road area. A sprite is used
// when it matches the box, otherwise the box is filled with fill.
func (g *Game) drawBox(dst *core.Screen, box core.RectF, sprite *Sprite, fill rune, c core.Color) {
	r := box.ToCells()
	useSprite := sprite != nil && sprite.W == r.W && sprite.H == r.H
	for dy := range r.H {
		y := r.Y + dy
		if y < 0 {
			continue
		}
		for dx := range r.W {
			ch := fill
			if useSprite {
				row := sprite.Rows[dy]
				if dx >= len(row) || row[dx] == ' ' {
					continue
				}
				ch = row[dx]
			}
			dst.SetColored(g.roadX+r.X+dx, y+hudRows, ch, c)
		}
	}
}

func powerUpGlyph(t engine.PowerUpType) (rune, core.Color) {
	switch t {
	case engine.PowerUpSlowSpeed:
		return SlowChar, core.ColorBrightCyan
	case engine.PowerUpShield:
		return ShieldChar, core.ColorYellow
	default:
		return LifeChar, core.ColorBrightRed
	}
}

// drawHUD draws the score line.
func (g *Game) drawHUD(dst *core.Screen, s engine.Snapshot) {
	x := 1
	text := fmt.Sprintf("Score %d  ", s.Score)
	dst.DrawTextColored(x, 0, text, core.ColorWhite)
	x += len(text)

	for i := range max(s.InitialLives, s.Lives) {
		if i < s.Lives {
			dst.SetColored(x+i, 0, LifeChar, core.ColorBrightRed)
		} else {
			dst.SetColored(x+i, 0, LostLifeChar, core.ColorGray)
		}
	}
	x += max(s.InitialLives, s.Lives) + 2

	if s.Slow.Active {
		text = fmt.Sprintf("%c %.1fs ", SlowChar, s.Slow.RemainingMs/1000)
		dst.DrawTextColored(x, 0, text, core.ColorBrightCyan)
		x += len([]rune(text))
	}
	if s.Shield.Active {
		text = fmt.Sprintf("%c %.1fs ", ShieldChar, s.Shield.RemainingMs/1000)
		dst.DrawTextColored(x, 0, text, core.ColorYellow)
	}

	right := fmt.Sprintf("Tier %d  Best %d", s.Tier, max(s.HighScore, s.Score))
	if s.Mode == core.ModeLeaderboard && s.Username != "" {
		right = "@" + s.Username + "  " + right
	}
	dst.DrawTextColored(dst.Width()-len([]rune(right))-1, 0, right, core.ColorGray)
}

// drawPanel draws a centered box with one line of text per row.
// The first line is the title.
func drawPanel(dst *core.Screen, titleColor core.Color, lines ...string) {
	boxW := 0
	for _, l := range lines {
		boxW = max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := len(lines) + 2
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorGray)

	for i, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		c := core.ColorDefault
		if i == 0 {
			c = titleColor
		}
		x := boxX + (boxW-len([]rune(l)))/2
		dst.DrawTextColored(x, boxY+1+i, l, c)
	}
}
