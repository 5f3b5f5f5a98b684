package blockart

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"strings"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	fontSize  = 24
	fontDPI   = 72
	threshold = uint8(40)
)

// Banner renders words as large half-block lettering.
type Banner struct {
	face  font.Face
	cache map[string]string
}

// NewBanner loads the font at path. An empty path uses the built-in bitmap
// font. TrueType files and OpenType collections are accepted.
func NewBanner(path string) (*Banner, error) {
	if path == "" {
		return &Banner{face: basicfont.Face7x13, cache: map[string]string{}}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading banner font: %w", err)
	}

	if f, err := truetype.Parse(data); err == nil {
		face := truetype.NewFace(f, &truetype.Options{Size: fontSize, DPI: fontDPI})
		return &Banner{face: face, cache: map[string]string{}}, nil
	}

	// Collections (.ttc) are not handled by truetype.
	if coll, err := opentype.ParseCollection(data); err == nil && coll.NumFonts() > 0 {
		if fnt, err := coll.Font(0); err == nil {
			face, err := opentype.NewFace(fnt, &opentype.FaceOptions{Size: fontSize, DPI: fontDPI})
			if err == nil {
				return &Banner{face: face, cache: map[string]string{}}, nil
			}
		}
	}

	return nil, fmt.Errorf("banner font %s: unsupported format", path)
}

// Render draws text no wider than maxCols cells. Results are cached.
func (b *Banner) Render(text string, maxCols int) string {
	if text == "" || maxCols <= 0 {
		return ""
	}
	key := fmt.Sprintf("%s\x00%d", text, maxCols)
	if cached, ok := b.cache[key]; ok {
		return cached
	}

	src := b.rasterize(text)
	w, h := src.Bounds().Dx(), src.Bounds().Dy()

	cols := min(w, maxCols)
	rows := max((h*cols+w*2-1)/(w*2), 1)

	rendered := imageToHalfBlocks(scaleDown(src, cols, rows*2), cols, rows)
	b.cache[key] = rendered
	return rendered
}

func (b *Banner) rasterize(text string) *image.Gray {
	const padding = 1

	m := b.face.Metrics()
	width := font.MeasureString(b.face, text).Ceil() + padding*2
	height := (m.Ascent + m.Descent).Ceil() + padding*2

	img := image.NewGray(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.Black}, image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: b.face,
		Dot:  fixed.P(padding, padding+m.Ascent.Ceil()),
	}
	d.DrawString(text)
	return img
}

// scaleDown scales a grayscale image using area averaging
func scaleDown(src *image.Gray, dstWidth, dstHeight int) *image.Gray {
	srcWidth := src.Bounds().Dx()
	srcHeight := src.Bounds().Dy()

	dst := image.NewGray(image.Rect(0, 0, dstWidth, dstHeight))

	xRatio := float64(srcWidth) / float64(dstWidth)
	yRatio := float64(srcHeight) / float64(dstHeight)

	for dy := range dstHeight {
		for dx := range dstWidth {
			sx1 := int(float64(dx) * xRatio)
			sy1 := int(float64(dy) * yRatio)
			sx2 := max(int(float64(dx+1)*xRatio), sx1+1)
			sy2 := max(int(float64(dy+1)*yRatio), sy1+1)
			sx2 = min(sx2, srcWidth)
			sy2 = min(sy2, srcHeight)

			var sum, count int
			for sy := sy1; sy < sy2; sy++ {
				for sx := sx1; sx < sx2; sx++ {
					sum += int(src.GrayAt(sx, sy).Y)
					count++
				}
			}

			if count > 0 {
				dst.SetGray(dx, dy, color.Gray{Y: uint8(sum / count)})
			}
		}
	}

	return dst
}

// imageToHalfBlocks converts a grayscale image to half-block art
func imageToHalfBlocks(img *image.Gray, cols, rows int) string {
	var result strings.Builder

	for row := range rows {
		for col := range cols {
			topOn := brightness(img, col, row*2) > threshold
			bottomOn := brightness(img, col, row*2+1) > threshold

			switch {
			case topOn && bottomOn:
				result.WriteRune('█')
			case topOn:
				result.WriteRune('▀')
			case bottomOn:
				result.WriteRune('▄')
			default:
				result.WriteRune(' ')
			}
		}
		if row < rows-1 {
			result.WriteRune('\n')
		}
	}

	return result.String()
}

func brightness(img *image.Gray, x, y int) uint8 {
	b := img.Bounds()
	if x < b.Min.X || y < b.Min.Y || x >= b.Max.X || y >= b.Max.Y {
		return 0
	}
	return img.GrayAt(x, y).Y
}
