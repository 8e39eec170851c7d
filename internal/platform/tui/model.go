package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// helpHeight is the number of rows reserved below the game for the help line.
const helpHeight = 1

// maxPending caps queued key presses; presses beyond it are dropped.
const maxPending = 16

// debugger is implemented by games that can summarize their state for logs.
type debugger interface {
	DebugString() string
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       core.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	pending    []core.Action // game actions in arrival order, one per tick
	gameState  core.GameState
	keys       KeyMap
	help       help.Model
	logger     *log.Logger
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game core.Game, cfg core.RuntimeConfig, logger *log.Logger) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := Model{
		game:       game,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		gameState:  core.GameState{Level: 1},
		keys:       DefaultKeyMap(),
		help:       help.New(),
		logger:     logger,
	}
	m.screen = core.NewScreen(cfg.ScreenW, m.gameHeight())
	m.help.Width = cfg.ScreenW
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.gameConfig())
	m.logStart()

	// Start the tick loop
	return tickCmd(m.config)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey queues a key press for a later tick. Quit is honored
// immediately, in every state; restart is a flag for the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	action := m.keys.Action(msg)
	switch action {
	case core.ActionQuit:
		m.quitting = true
		m.logger.Info("quit", "score", m.gameState.Score, "level", m.gameState.Level, "lines", m.gameState.Lines)
		return m, tea.Quit
	case core.ActionNone:
		return m, nil
	case core.ActionRestart:
		m.inputFrame.Set(action)
		return m, nil
	}

	if len(m.pending) < maxPending {
		m.pending = append(m.pending, action)
	}
	return m, nil
}

// handleResize keeps the running session and only tells the game about
// the new drawable area.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, m.gameHeight())
	m.help.Width = msg.Width

	m.game.Resize(msg.Width, m.gameHeight())
	m.logger.Debug("resize", "width", msg.Width, "height", msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		// Reset seed for new game
		m.config.Seed = now.UnixNano()
		m.game.Reset(m.gameConfig())
		m.gameState = m.game.State()
		m.keys.Restart.SetEnabled(false)
		m.inputFrame.Clear()
		m.pending = nil
		m.logger.Info("restart", "seed", m.config.Seed)
		return m, tickCmd(m.config)
	}

	// One queued command per tick
	if len(m.pending) > 0 {
		m.inputFrame.Set(m.pending[0])
		m.pending = m.pending[1:]
	}

	// Run game simulation
	m.inputFrame.Now = now
	prev := m.gameState
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.logTransitions(prev, m.gameState)

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config)
}

func (m *Model) logStart() {
	m.logger.Info("session start",
		"game", m.game.ID(),
		"screen", fmt.Sprintf("%dx%d", m.config.ScreenW, m.config.ScreenH),
		"seed", m.config.Seed)
	if d, ok := m.game.(debugger); ok {
		m.logger.Debug("session", "state", d.DebugString())
	}
}

func (m *Model) logTransitions(prev, cur core.GameState) {
	if cur.Level > prev.Level && !cur.GameOver {
		m.logger.Info("level up", "level", cur.Level, "lines", cur.Lines)
	}
	if cur.GameOver && !prev.GameOver {
		m.keys.Restart.SetEnabled(true)
		m.logger.Info("game over", "score", cur.Score, "level", cur.Level, "lines", cur.Lines)
		if d, ok := m.game.(debugger); ok {
			m.logger.Debug("final", "state", d.DebugString())
		}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	// Render current state
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot: no home directory", "err", err)
		return
	}
	dir := filepath.Join(home, ".tetris", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot: create directory", "err", err)
		return
	}

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot: write", "path", path, "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// Render game to screen buffer
	m.game.Render(m.screen)

	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// State returns the last observed game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// gameHeight is the screen height left for the game below the help line.
func (m Model) gameHeight() int {
	return max(0, m.config.ScreenH-helpHeight)
}

// gameConfig is the runtime config as seen by the game.
func (m Model) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = m.gameHeight()
	return cfg
}

// Run starts the Bubble Tea program and returns the final game state.
func Run(game core.Game, cfg core.RuntimeConfig, logger *log.Logger) (core.GameState, error) {
	model := NewModel(game, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return model.State(), fmt.Errorf("run %s: %w", game.ID(), err)
	}
	if fm, ok := final.(Model); ok {
		return fm.State(), nil
	}
	return model.State(), nil
}
