package views

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/f3rmion/pokedex/internal/dex"
)

// TileWidth is the inner width of a favorites tile, in cells.
const TileWidth = 16

var (
	favoritesTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#4ecdc4"))

	tileStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3d5a80")).
			Width(TileWidth).
			Align(lipgloss.Center)

	tileNameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffe66d")).
			Bold(true)

	noDataStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Italic(true)
)

// FavoritesModel renders the favorites as a grid of sprite-and-name tiles.
type FavoritesModel struct {
	favorites   dex.Favorites
	art         map[string]string
	showSprites bool

	width  int
	height int
}

// NewFavoritesModel creates an empty favorites grid.
func NewFavoritesModel(showSprites bool) FavoritesModel {
	return FavoritesModel{
		art:         map[string]string{},
		showSprites: showSprites,
	}
}

// SetSize updates the view dimensions.
func (m *FavoritesModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetFavorites replaces the displayed list.
func (m *FavoritesModel) SetFavorites(f dex.Favorites) {
	m.favorites = f
}

// SetSpriteArt records tile-sized art for a sprite url.
func (m *FavoritesModel) SetSpriteArt(url, art string) {
	if url == "" {
		return
	}
	m.art[url] = art
}

// Columns is how many tiles fit side by side.
func (m FavoritesModel) Columns() int {
	return max(1, m.width/(TileWidth+2))
}

// View renders the favorites grid. Tiles past the available height are
// summarized in a trailing count.
func (m FavoritesModel) View() string {
	title := favoritesTitleStyle.Render(fmt.Sprintf("Favorites (%d)", len(m.favorites)))
	if len(m.favorites) == 0 {
		return title + "\n" + noDataStyle.Render("Press ctrl+f to add the creature on screen")
	}

	tiles := make([]string, len(m.favorites))
	for i, c := range m.favorites {
		tiles[i] = m.renderTile(c)
	}

	cols := m.Columns()
	tileHeight := lipgloss.Height(tiles[0])
	maxRows := len(tiles)
	if m.height > 0 && tileHeight > 0 {
		maxRows = max(1, (m.height-2)/tileHeight)
	}

	var rows []string
	shown := 0
	for start := 0; start < len(tiles) && len(rows) < maxRows; start += cols {
		end := min(start+cols, len(tiles))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, tiles[start:end]...))
		shown = end
	}

	out := title + "\n" + lipgloss.JoinVertical(lipgloss.Left, rows...)
	if hidden := len(tiles) - shown; hidden > 0 {
		out += "\n" + noDataStyle.Render(fmt.Sprintf("+%d more", hidden))
	}
	return out
}

func (m FavoritesModel) renderTile(c dex.Creature) string {
	name := tileNameStyle.Render(runewidth.Truncate(c.Name, TileWidth, "…"))
	if !m.showSprites {
		return tileStyle.Render(name)
	}

	art := m.art[c.FrontSprite]
	if art == "" {
		art = noDataStyle.Render("?")
	}
	return tileStyle.Render(lipgloss.JoinVertical(lipgloss.Center, art, name))
}

// Names lists the favorites in order.
func (m FavoritesModel) Names() []string {
	names := make([]string, len(m.favorites))
	for i, c := range m.favorites {
		names[i] = c.Name
	}
	return names
}
