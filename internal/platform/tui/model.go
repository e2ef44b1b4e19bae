package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lane-runner/internal/core"
	"github.com/vovakirdan/lane-runner/internal/engine"
	"github.com/vovakirdan/lane-runner/internal/registry"
	"github.com/vovakirdan/lane-runner/internal/storage"
)

// footerRows is the line below the playfield used for toasts and help.
const footerRows = 1

// eventSource is implemented by games that publish engine events.
type eventSource interface {
	Subscribe(fn engine.Observer) (unsubscribe func())
}

// GameModel is the Bubble Tea model running one game.
type GameModel struct {
	game   registry.Game
	screen *core.Screen
	store  *storage.Store
	config core.RuntimeConfig
	owner  string // Who registered usernames belong to (OS or SSH user)
	logger *log.Logger

	keys  KeyMap
	help  help.Model
	input textinput.Model
	inbox *inbox
	hud   hud
	gen   uint64

	state      engine.GameState
	now        time.Time
	err        error
	standalone bool // Quit instead of returning to a menu
	quitting   bool
	backToMenu bool
}

// NewGameModel resets the game for cfg and wires its events to the HUD.
// A reset failure is kept and shown instead of the game.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, owner string, logger *log.Logger) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.Default()
	}
	if store != nil {
		if high, err := store.HighScore(game.ID()); err == nil {
			cfg.HighScore = max(cfg.HighScore, high)
		} else {
			logger.Warn("could not read high score", "err", err)
		}
	}

	input := textinput.New()
	input.Placeholder = "username"
	input.CharLimit = engine.MaxUsernameLen
	input.Width = engine.MaxUsernameLen + 1
	input.Prompt = "› "
	if name, err := engine.NormalizeUsername(cfg.Username); err == nil {
		input.SetValue(name)
	}

	m := GameModel{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-footerRows, 1)),
		store:  store,
		config: cfg,
		owner:  owner,
		logger: logger,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		input:  input,
		inbox:  &inbox{},
		gen:    nextFrameGen(),
		now:    time.Now(),
	}
	m.help.Width = cfg.ScreenW

	playfield := cfg
	playfield.ScreenH = m.screen.Height()
	if err := game.Reset(playfield); err != nil {
		m.err = err
		return m
	}
	if src, ok := game.(eventSource); ok {
		src.Subscribe(m.inbox.add)
	}
	m.syncState()
	return m
}

// Init starts the frame loop.
func (m GameModel) Init() tea.Cmd {
	if m.err != nil {
		return nil
	}
	return tea.Batch(frameCmd(m.config.TickRate, m.gen), textinput.Blink)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-footerRows, 1))
		m.help.Width = msg.Width
		if m.err == nil {
			m.game.Resize(m.screen.Width(), m.screen.Height())
		}
		return m, nil

	case FrameMsg:
		if msg.Gen != m.gen || m.err != nil || m.quitting || m.backToMenu {
			return m, nil
		}
		return m.handleFrame(msg.At)
	}

	if m.state == engine.StateUsernameCreation {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleFrame advances the game and reacts to the events it produced.
func (m GameModel) handleFrame(now time.Time) (tea.Model, tea.Cmd) {
	m.now = now
	m.game.Frame(now)
	for _, ev := range m.inbox.drain() {
		m.onEvent(ev)
	}
	m.syncState()
	m.hud.expire(now)
	return m, frameCmd(m.config.TickRate, m.gen)
}

// onEvent turns engine events into toasts and persisted runs.
func (m *GameModel) onEvent(ev engine.Event) {
	if text, kind, ok := toastFor(ev); ok {
		m.hud.push(m.now, text, kind, toastDuration)
	}
	if over, ok := ev.(engine.GameOver); ok {
		m.saveRun(over)
	}
}

// saveRun stores a finished run. Best-effort: the game goes on regardless.
func (m *GameModel) saveRun(over engine.GameOver) {
	if m.store == nil || over.FinalScore <= 0 {
		return
	}
	run := storage.Run{
		GameID:     m.game.ID(),
		Mode:       over.Mode.String(),
		Score:      over.FinalScore,
		Tier:       over.Tier,
		DurationMs: int64(over.SurvivedMs),
	}
	if over.Mode == core.ModeLeaderboard {
		run.Username = over.Username
	}
	if _, err := m.store.SaveRun(run); err != nil {
		m.logger.Warn("could not save run", "err", err)
	}
}

// syncState follows the game's state and focuses the username input.
func (m *GameModel) syncState() {
	st, ok := engine.ParseGameState(m.game.Status().State)
	if !ok || st == m.state {
		return
	}
	prev := m.state
	m.state = st

	if st == engine.StateUsernameCreation {
		m.input.Focus()
	} else if prev == engine.StateUsernameCreation {
		m.input.Blur()
	}
	if st == engine.StateGameplay {
		m.hud.hint(m.now)
	}
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.err != nil {
		m.quitting = true
		return m, tea.Quit
	}

	if m.state == engine.StateUsernameCreation {
		return m.handleUsernameKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Back):
		if m.state == engine.StateGameplay {
			m.game.Apply(core.NewIntent(core.ActionPause))
			return m, nil
		}
		return m.leave()
	}

	if in, ok := m.keys.Intent(msg); ok {
		m.game.Apply(in)
	}
	return m, nil
}

func (m GameModel) handleUsernameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Submit):
		m.submitUsername()
		return m, nil
	case msg.Type == tea.KeyEsc:
		m.game.Apply(core.NewIntent(core.ActionBack))
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submitUsername claims the name in storage before handing it to the game.
// Malformed names go straight to the game, which rejects them with an event.
func (m *GameModel) submitUsername() {
	raw := m.input.Value()
	if name, err := engine.NormalizeUsername(raw); err == nil && m.store != nil {
		holder, err := m.store.PlayerOwner(name)
		if err != nil {
			m.logger.Warn("could not look up username", "err", err)
		}
		err = m.store.RegisterPlayer(name, m.owner)
		switch {
		case errors.Is(err, storage.ErrUsernameTaken):
			m.hud.push(m.now, fmt.Sprintf("%q is taken, pick another", name), toastBad, toastDuration)
			return
		case err != nil:
			m.logger.Warn("could not register username", "err", err)
		case holder != "":
			m.hud.push(m.now, "Welcome back, "+name+"!", toastGood, toastDuration)
		}
	}
	m.game.Apply(core.SubmitUsername(raw))
}

// leave returns to the menu, or quits when running on its own.
func (m GameModel) leave() (tea.Model, tea.Cmd) {
	m.backToMenu = true
	m.game.Close()
	if m.standalone {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".lanerunner", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "err", err)
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	if err := os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "err", err)
		return
	}
	m.hud.push(m.now, "Screenshot saved", toastInfo, toastDuration)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	if m.err != nil {
		return renderError(m.err, m.config.ScreenW)
	}

	m.game.Render(m.screen)
	body := RenderScreen(m.screen)
	if m.state == engine.StateUsernameCreation {
		return body + "\n" + centerText(m.input.View(), m.config.ScreenW)
	}
	return body + "\n" + m.footer()
}

// footer shows the newest toast, or the key help for the current state.
func (m GameModel) footer() string {
	if t, ok := m.hud.current(); ok {
		return renderToast(t, m.config.ScreenW)
	}
	return helpStyle.Render(m.help.ShortHelpView(m.keys.HelpFor(m.state)))
}

// State returns the game state the model last observed.
func (m GameModel) State() engine.GameState {
	return m.state
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a single game in its own Bubble Tea program.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, owner string, logger *log.Logger) error {
	model := NewGameModel(game, store, cfg, owner, logger)
	model.standalone = true
	defer game.Close()

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(GameModel); ok && fm.err != nil {
		return fm.err
	}
	return nil
}
