// Package views provides the individual views for the pokedex TUI.
package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/f3rmion/pokedex/internal/dex"
	"github.com/f3rmion/pokedex/internal/tui/blockart"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			Background(lipgloss.Color("#1a1a2e")).
			Padding(0, 1)

	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffe66d")).
			Bold(true)

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4ecdc4")).
		Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a8dadc")).
			Bold(true).
			Width(labelWidth)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f1faee"))

	spriteCaptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Italic(true)

	spriteBoxStyle = lipgloss.NewStyle().
			Padding(0, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffe66d")).
			Bold(true).
			Italic(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3d5a80")).
			Padding(0, 2)
)

const labelWidth = 16

// SearchChangedMsg is emitted when the search text changes.
type SearchChangedMsg struct {
	Text string
}

// DexModel is the search box and detail panel.
type DexModel struct {
	input   textinput.Model
	spinner spinner.Model
	banner  *blockart.Banner

	creature    *dex.Creature
	frontArt    string
	shinyArt    string
	loading     bool
	showSprites bool

	width  int
	height int
}

// NewDexModel creates the dex view. banner may be nil to print names plainly.
func NewDexModel(banner *blockart.Banner, showSprites bool) DexModel {
	ti := textinput.New()
	ti.Placeholder = "Search by name or id..."
	ti.Focus()
	ti.CharLimit = 40
	ti.Width = 30
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ecdc4"))
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffe66d"))

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = loadingStyle

	return DexModel{
		input:       ti,
		spinner:     sp,
		banner:      banner,
		showSprites: showSprites,
	}
}

// SetSize updates the view dimensions.
func (m *DexModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Value is the current search text.
func (m DexModel) Value() string {
	return m.input.Value()
}

// SetCreature replaces the displayed creature and clears its sprite art.
func (m *DexModel) SetCreature(c dex.Creature) {
	m.creature = &c
	m.frontArt = ""
	m.shinyArt = ""
}

// SetSpriteArt attaches rendered art when url belongs to the displayed
// creature.
func (m *DexModel) SetSpriteArt(url, art string) {
	if m.creature == nil || url == "" {
		return
	}
	if url == m.creature.FrontSprite {
		m.frontArt = art
	}
	if url == m.creature.ShinySprite {
		m.shinyArt = art
	}
}

// StartLoading shows the spinner. The returned command drives it and is nil
// when the spinner is already running.
func (m *DexModel) StartLoading() tea.Cmd {
	if m.loading {
		return nil
	}
	m.loading = true
	return m.spinner.Tick
}

// StopLoading hides the spinner.
func (m *DexModel) StopLoading() {
	m.loading = false
}

// Loading reports whether the spinner is shown.
func (m DexModel) Loading() bool {
	return m.loading
}

// Update handles messages.
func (m DexModel) Update(msg tea.Msg) (DexModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	if after := m.input.Value(); after != before {
		changed := func() tea.Msg { return SearchChangedMsg{Text: after} }
		return m, tea.Batch(cmd, changed)
	}
	return m, cmd
}

// View renders the dex view.
func (m DexModel) View() string {
	var b strings.Builder

	header := titleStyle.Render("Pokédex") + "  " + m.input.View()
	if m.loading {
		header += " " + m.spinner.View()
	}
	b.WriteString(header)
	b.WriteString("\n")

	if m.creature == nil {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("Type a name or number, or press ctrl+r for a random one"))
		return b.String()
	}

	b.WriteString(m.renderDetail(*m.creature))
	return b.String()
}

func (m DexModel) renderDetail(c dex.Creature) string {
	var b strings.Builder

	contentWidth := max(m.width-4, 40)

	b.WriteString("\n")
	b.WriteString(m.renderName(c, contentWidth))
	b.WriteString("\n")

	if m.showSprites {
		if sprites := m.renderSprites(c); sprites != "" {
			b.WriteString(sprites)
			b.WriteString("\n")
		}
	}

	valueWidth := contentWidth - labelWidth - 6
	rows := []string{
		m.renderRow("Location", c.LocationArea, valueWidth),
		m.renderRow("Type", strings.Join(c.Types, ", "), valueWidth),
		m.renderRow("Abilities", strings.Join(c.Abilities, ", "), valueWidth),
		m.renderRow("Moves", strings.Join(c.Moves, ", "), valueWidth),
		m.renderRow("Evolution Path", c.Evolution(), valueWidth),
	}
	b.WriteString(boxStyle.Render(strings.Join(rows, "\n")))

	return b.String()
}

func (m DexModel) renderName(c dex.Creature, width int) string {
	id := idStyle.Render(fmt.Sprintf("#%d", c.ID))
	if m.banner != nil {
		if art := m.banner.Render(c.Name, width-8); art != "" {
			return lipgloss.JoinHorizontal(lipgloss.Bottom, bannerStyle.Render(art), "  ", id)
		}
	}
	return bannerStyle.Render(c.Name) + "  " + id
}

func (m DexModel) renderSprites(c dex.Creature) string {
	var boxes []string
	if c.FrontSprite != "" {
		boxes = append(boxes, spriteBox(m.frontArt, "front"))
	}
	if c.ShinySprite != "" {
		boxes = append(boxes, spriteBox(m.shinyArt, "shiny"))
	}
	if len(boxes) == 0 {
		return ""
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, boxes...)
}

func spriteBox(art, caption string) string {
	if art == "" {
		art = spriteCaptionStyle.Render("...")
	}
	return spriteBoxStyle.Render(
		lipgloss.JoinVertical(lipgloss.Center, art, spriteCaptionStyle.Render(caption)),
	)
}

func (m DexModel) renderRow(label, value string, width int) string {
	wrapped := wordWrap(value, width)
	indent := strings.Repeat(" ", labelWidth)
	lines := strings.Split(wrapped, "\n")
	for i := range lines {
		lines[i] = valueStyle.Render(lines[i])
		if i > 0 {
			lines[i] = indent + lines[i]
		}
	}
	return labelStyle.Render(label+":") + strings.Join(lines, "\n")
}

func wordWrap(s string, width int) string {
	if width <= 0 {
		width = 60
	}
	var lines []string
	var currentLine strings.Builder
	currentWidth := 0

	words := strings.Fields(s)
	for _, word := range words {
		wordWidth := runewidth.StringWidth(word)
		if currentWidth+wordWidth+1 > width && currentWidth > 0 {
			lines = append(lines, currentLine.String())
			currentLine.Reset()
			currentWidth = 0
		}
		if currentWidth > 0 {
			currentLine.WriteString(" ")
			currentWidth++
		}
		currentLine.WriteString(word)
		currentWidth += wordWidth
	}
	if currentLine.Len() > 0 {
		lines = append(lines, currentLine.String())
	}
	return strings.Join(lines, "\n")
}
