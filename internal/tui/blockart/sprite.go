// Package blockart renders sprites and text banners as terminal block art
// using half-block characters.
package blockart

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"
)

// alphaCutoff is the minimum alpha for a pixel to count as drawn.
const alphaCutoff = 0x80

// DecodeSprite decodes PNG sprite bytes.
func DecodeSprite(data []byte) (image.Image, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding sprite: %w", err)
	}
	return img, nil
}

// RenderSprite draws img cols cells wide, cropped to its visible pixels.
// Each cell covers two vertically stacked pixels. A fully transparent
// image renders as "".
func RenderSprite(img image.Image, cols int) string {
	if img == nil || cols <= 0 {
		return ""
	}
	box := opaqueBounds(img)
	if box.Empty() {
		return ""
	}

	rows := (box.Dy()*cols + box.Dx()*2 - 1) / (box.Dx() * 2)
	if rows < 1 {
		rows = 1
	}

	scaled := image.NewNRGBA(image.Rect(0, 0, cols, rows*2))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, box, draw.Src, nil)

	lines := make([]string, rows)
	for row := range rows {
		var line strings.Builder
		for col := range cols {
			top := scaled.NRGBAAt(col, row*2)
			bottom := scaled.NRGBAAt(col, row*2+1)
			line.WriteString(cell(top, bottom))
		}
		lines[row] = strings.TrimRight(line.String(), " ")
	}
	return strings.Join(lines, "\n")
}

func cell(top, bottom color.NRGBA) string {
	topOn := top.A >= alphaCutoff
	bottomOn := bottom.A >= alphaCutoff

	switch {
	case topOn && bottomOn && top == bottom:
		return lipgloss.NewStyle().Foreground(hex(top)).Render("█")
	case topOn && bottomOn:
		return lipgloss.NewStyle().Foreground(hex(top)).Background(hex(bottom)).Render("▀")
	case topOn:
		return lipgloss.NewStyle().Foreground(hex(top)).Render("▀")
	case bottomOn:
		return lipgloss.NewStyle().Foreground(hex(bottom)).Render("▄")
	default:
		return " "
	}
}

func hex(c color.NRGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// opaqueBounds is the smallest rectangle holding every drawn pixel.
func opaqueBounds(img image.Image) image.Rectangle {
	b := img.Bounds()
	box := image.Rectangle{}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA).A < alphaCutoff {
				continue
			}
			box = box.Union(image.Rect(x, y, x+1, y+1))
		}
	}
	return box
}
