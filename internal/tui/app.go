package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/f3rmion/pokedex/internal/config"
	"github.com/f3rmion/pokedex/internal/dex"
	"github.com/f3rmion/pokedex/internal/session"
	"github.com/f3rmion/pokedex/internal/tui/blockart"
	"github.com/f3rmion/pokedex/internal/tui/views"
)

// Lookuper runs lookups; *dex.Pipeline implements it.
type Lookuper interface {
	Lookup(ctx context.Context, loc dex.Locator) (dex.Creature, error)
	RandomLocator() dex.Locator
}

// SpriteSource downloads sprite images; *pokeapi.Client implements it.
type SpriteSource interface {
	Sprite(ctx context.Context, url string) ([]byte, error)
}

// ClipboardWriter copies text to the system clipboard.
type ClipboardWriter interface {
	Write(text string) error
}

// Deps are the collaborators the app drives. Sprites, Clipboard and Banner
// are optional.
type Deps struct {
	Lookup    Lookuper
	Sprites   SpriteSource
	Clipboard ClipboardWriter
	Banner    *blockart.Banner
	Logger    *zap.Logger
}

// LookupResultMsg delivers a finished lookup back to the event loop.
type LookupResultMsg struct {
	Result session.Result
}

// SpriteLoadedMsg delivers rendered sprite art for one url, at detail and
// tile sizes.
type SpriteLoadedMsg struct {
	URL    string
	Detail string
	Tile   string
	Err    error
}

type clearStatusMsg struct{}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

type spriteArt struct {
	detail string
	tile   string
}

// AppModel is the main TUI model: the dex panel above the favorites grid.
type AppModel struct {
	session   *session.Session
	lookup    Lookuper
	sprites   SpriteSource
	clipboard ClipboardWriter
	logger    *zap.Logger
	ui        config.UIConfig

	// In-flight lookup; canceled when a newer one starts.
	cancel context.CancelFunc

	// Rendered sprites by url. Only touched from Update.
	art     map[string]spriteArt
	pending map[string]bool

	// Layout state
	width  int
	height int
	ready  bool

	// Sub-models (views)
	dexView       views.DexModel
	favoritesView views.FavoritesModel

	keys     keyMap
	help     help.Model
	showHelp bool
	status   string
}

// NewApp creates the TUI application.
func NewApp(deps Deps, ui config.UIConfig) AppModel {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	showSprites := ui.Sprites && deps.Sprites != nil

	return AppModel{
		session:   session.New(),
		lookup:    deps.Lookup,
		sprites:   deps.Sprites,
		clipboard: deps.Clipboard,
		logger:    logger,
		ui:        ui,
		art:       map[string]spriteArt{},
		pending:   map[string]bool{},

		dexView:       views.NewDexModel(deps.Banner, showSprites),
		favoritesView: views.NewFavoritesModel(showSprites),

		keys: defaultKeyMap(),
		help: help.New(),
	}
}

// Session exposes the UI state for inspection.
func (m AppModel) Session() *session.Session {
	return m.session
}

// Init initializes the model
func (m AppModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Help overlay - any key closes it
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.cancelInFlight()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Random):
			req := m.session.Lookup(m.lookup.RandomLocator())
			cmd := m.startLookup(req)
			return m, cmd
		case key.Matches(msg, m.keys.Favorite):
			if m.session.Favorite() {
				m.favoritesView.SetFavorites(m.session.Favorites())
			}
			return m, nil
		case key.Matches(msg, m.keys.Copy):
			cmd := m.copyCurrent()
			return m, cmd
		case key.Matches(msg, m.keys.Help) && m.dexView.Value() == "":
			m.showHelp = true
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		contentWidth := m.width - 4
		favoritesHeight := max(m.height/3, 6)
		m.dexView.SetSize(contentWidth, m.height-favoritesHeight-4)
		m.favoritesView.SetSize(contentWidth, favoritesHeight)
		m.help.Width = contentWidth
		return m, nil

	case views.SearchChangedMsg:
		req, ok := m.session.SetSearch(msg.Text)
		if !ok {
			return m, nil
		}
		cmd := m.startLookup(req)
		return m, cmd

	case LookupResultMsg:
		cmd := m.finishLookup(msg.Result)
		return m, cmd

	case SpriteLoadedMsg:
		delete(m.pending, msg.URL)
		if msg.Err != nil {
			m.logger.Warn("sprite load failed", zap.String("url", msg.URL), zap.Error(msg.Err))
			return m, nil
		}
		m.art[msg.URL] = spriteArt{detail: msg.Detail, tile: msg.Tile}
		m.dexView.SetSpriteArt(msg.URL, msg.Detail)
		m.favoritesView.SetSpriteArt(msg.URL, msg.Tile)
		return m, nil

	case clearStatusMsg:
		m.status = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.dexView, cmd = m.dexView.Update(msg)
	return m, cmd
}

// startLookup runs req off the event loop, canceling any older request.
func (m *AppModel) startLookup(req session.Request) tea.Cmd {
	m.cancelInFlight()
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	m.logger.Debug("lookup started",
		zap.Uint64("generation", req.Generation),
		zap.String("locator", req.Locator.String()),
	)

	lookup := m.lookup
	run := func() tea.Msg {
		c, err := lookup.Lookup(ctx, req.Locator)
		return LookupResultMsg{Result: session.Result{Generation: req.Generation, Creature: c, Err: err}}
	}
	return tea.Batch(run, m.dexView.StartLoading())
}

func (m *AppModel) cancelInFlight() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

// finishLookup applies a lookup result. Failures are logged and leave the
// display unchanged.
func (m *AppModel) finishLookup(r session.Result) tea.Cmd {
	if m.session.IsLatest(r.Generation) {
		m.cancelInFlight()
		m.dexView.StopLoading()
	}

	switch {
	case r.Err != nil && errors.Is(r.Err, context.Canceled):
		m.logger.Debug("lookup canceled", zap.Uint64("generation", r.Generation))
		return nil
	case r.Err != nil:
		m.logger.Warn("lookup failed", zap.Uint64("generation", r.Generation), zap.Error(r.Err))
		return nil
	}

	if !m.session.Apply(r) {
		m.logger.Debug("discarding stale lookup",
			zap.Uint64("generation", r.Generation),
			zap.Uint64("latest", m.session.Generation()),
		)
		return nil
	}

	c, _ := m.session.Current()
	m.logger.Info("lookup succeeded", zap.Int("id", c.ID), zap.String("name", c.Name))
	m.dexView.SetCreature(c)
	return m.loadSprites(c)
}

func (m *AppModel) loadSprites(c dex.Creature) tea.Cmd {
	if !m.ui.Sprites || m.sprites == nil {
		return nil
	}

	var cmds []tea.Cmd
	for _, url := range []string{c.FrontSprite, c.ShinySprite} {
		if url == "" {
			continue
		}
		if art, ok := m.art[url]; ok {
			m.dexView.SetSpriteArt(url, art.detail)
			continue
		}
		if m.pending[url] {
			continue
		}
		m.pending[url] = true
		cmds = append(cmds, fetchSprite(m.sprites, url, m.ui.SpriteWidth))
	}
	return tea.Batch(cmds...)
}

func fetchSprite(src SpriteSource, url string, cols int) tea.Cmd {
	return func() tea.Msg {
		data, err := src.Sprite(context.Background(), url)
		if err != nil {
			return SpriteLoadedMsg{URL: url, Err: err}
		}
		img, err := blockart.DecodeSprite(data)
		if err != nil {
			return SpriteLoadedMsg{URL: url, Err: err}
		}
		return SpriteLoadedMsg{
			URL:    url,
			Detail: blockart.RenderSprite(img, cols),
			Tile:   blockart.RenderSprite(img, views.TileWidth),
		}
	}
}

func (m *AppModel) copyCurrent() tea.Cmd {
	c, ok := m.session.Current()
	if !ok {
		return nil
	}
	if m.clipboard == nil {
		m.status = "Clipboard unavailable"
		return clearStatusAfter(2 * time.Second)
	}
	if err := m.clipboard.Write(c.Summary()); err != nil {
		m.logger.Warn("clipboard write failed", zap.Error(err))
		m.status = "Clipboard unavailable"
		return clearStatusAfter(2 * time.Second)
	}
	m.status = "Copied " + c.Name
	return clearStatusAfter(2 * time.Second)
}

// View renders the UI
func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	divider := DividerStyle.Render(strings.Repeat("─", max(m.width-4, 0)))

	footer := m.help.ShortHelpView(m.keys.ShortHelp())
	if m.status != "" {
		footer = StatusStyle.Render(m.status) + "  " + footer
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.dexView.View(),
		divider,
		m.favoritesView.View(),
		"",
		footer,
	)

	return ContentStyle.
		Width(m.width).
		MaxHeight(m.height).
		Render(content)
}

// renderHelp renders the help overlay
func (m AppModel) renderHelp() string {
	var b strings.Builder
	b.WriteString(HelpTitleStyle.Render("Pokédex"))
	b.WriteString("\n")

	for _, group := range m.keys.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(HelpKeyStyle.Render(h.Key))
			b.WriteString(HelpDescStyle.Render(h.Desc))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(HelpDescStyle.Render("Typing searches by name or number on every change."))
	b.WriteString("\n\n")
	b.WriteString(HelpHintStyle.Render("Press any key to close"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, HelpBoxStyle.Render(b.String()))
}
