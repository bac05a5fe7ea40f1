package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"leveled/core"
	"leveled/editor"
)

// ErrInvalidColor is returned for palette entries that are not #rrggbb
var ErrInvalidColor = errors.New("invalid color")

// Palette holds the colors of an Image renderer.
type Palette struct {
	Background colorful.Color
	Styles     map[editor.Style]colorful.Color
}

// DefaultPalette is a dark theme. Grid lines are a blend of the background
// and the axis color.
func DefaultPalette() Palette {
	p, err := ParsePalette("#1e1e2e", map[editor.Style]string{
		editor.StyleAxis:     "#585b70",
		editor.StyleWall:     "#cdd6f4",
		editor.StyleVertex:   "#89b4fa",
		editor.StylePending:  "#f9e2af",
		editor.StyleSelected: "#f38ba8",
		editor.StyleText:     "#a6adc8",
	})
	if err != nil {
		panic(err)
	}
	return p
}

// ParsePalette builds a palette from hex colors. A missing grid color is
// derived from the background and the axis.
func ParsePalette(background string, styles map[editor.Style]string) (Palette, error) {
	bg, err := colorful.Hex(background)
	if err != nil {
		return Palette{}, fmt.Errorf("%w: background %q", ErrInvalidColor, background)
	}
	p := Palette{Background: bg, Styles: make(map[editor.Style]colorful.Color, len(styles)+1)}
	for style, hex := range styles {
		c, err := colorful.Hex(hex)
		if err != nil {
			return Palette{}, fmt.Errorf("%w: style %d %q", ErrInvalidColor, style, hex)
		}
		p.Styles[style] = c
	}
	if _, ok := p.Styles[editor.StyleGrid]; !ok {
		axis, ok := p.Styles[editor.StyleAxis]
		if !ok {
			axis = colorful.Color{R: 0.5, G: 0.5, B: 0.5}
		}
		p.Styles[editor.StyleGrid] = bg.BlendLab(axis, 0.4).Clamped()
	}
	return p, nil
}

// Color returns the color for style, white when the palette has none.
func (p Palette) Color(style editor.Style) color.RGBA {
	c, ok := p.Styles[style]
	if !ok {
		return color.RGBA{0xff, 0xff, 0xff, 0xff}
	}
	return toRGBA(c)
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.RGB255()
	return color.RGBA{r, g, b, 0xff}
}

// Stroke widths and point radius in pixels
var lineWidths = map[editor.Style]float32{
	editor.StyleGrid:     1,
	editor.StyleAxis:     1.5,
	editor.StyleWall:     3,
	editor.StylePending:  2,
	editor.StyleSelected: 3,
}

const pointRadius = 4

// Image rasterizes onto an RGBA image with anti-aliased lines.
type Image struct {
	img     *image.RGBA
	bounds  core.Bounds
	scale   float32
	palette Palette
	raster  *vector.Rasterizer
	face    font.Face
}

// NewImage creates a raster covering a width x height window with scale
// pixels per window unit. Call Close when done to release the label font.
func NewImage(width, height int, scale float64, palette Palette) (*Image, error) {
	if width <= 0 || height <= 0 || scale <= 0 {
		return nil, fmt.Errorf("image renderer: size %dx%d at scale %v", width, height, scale)
	}

	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse label font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    12,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create label face: %w", err)
	}

	pw := int(math.Ceil(float64(width)*scale)) + 1
	ph := int(math.Ceil(float64(height)*scale)) + 1
	im := &Image{
		img:     image.NewRGBA(image.Rect(0, 0, pw, ph)),
		bounds:  core.Bounds{Max: core.Pt(width, height)},
		scale:   float32(scale),
		palette: palette,
		raster:  vector.NewRasterizer(pw, ph),
		face:    face,
	}
	im.Clear()
	return im, nil
}

// Clear fills the image with the background color.
func (im *Image) Clear() {
	draw.Draw(im.img, im.img.Bounds(), image.NewUniform(toRGBA(im.palette.Background)), image.Point{}, draw.Src)
}

// Image returns the raster.
func (im *Image) Image() *image.RGBA { return im.img }

// Close releases the label font face.
func (im *Image) Close() error {
	return im.face.Close()
}

// EncodePNG writes the raster as a PNG.
func (im *Image) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, im.img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func (im *Image) Bounds() core.Bounds { return im.bounds }

// pixel returns the centre of the pixel showing window position p
func (im *Image) pixel(p core.Point) (float32, float32) {
	return float32(p.X-im.bounds.Min.X)*im.scale + 0.5, float32(p.Y-im.bounds.Min.Y)*im.scale + 0.5
}

func (im *Image) DrawLine(a, b core.Point, style editor.Style) {
	ax, ay := im.pixel(a)
	bx, by := im.pixel(b)
	dx, dy := bx-ax, by-ay
	length := float32(math.Hypot(float64(dx), float64(dy)))
	if length == 0 {
		im.DrawPoint(a, style)
		return
	}

	width, ok := lineWidths[style]
	if !ok {
		width = 1
	}
	// Half-width normal
	nx, ny := -dy/length*width/2, dx/length*width/2

	im.begin()
	im.raster.MoveTo(ax+nx, ay+ny)
	im.raster.LineTo(bx+nx, by+ny)
	im.raster.LineTo(bx-nx, by-ny)
	im.raster.LineTo(ax-nx, ay-ny)
	im.raster.ClosePath()
	im.fill(style)
}

// DrawPoint draws an octagon around p.
func (im *Image) DrawPoint(p core.Point, style editor.Style) {
	cx, cy := im.pixel(p)
	im.begin()
	for i := range 8 {
		angle := float64(i) * math.Pi / 4
		x := cx + pointRadius*float32(math.Cos(angle))
		y := cy + pointRadius*float32(math.Sin(angle))
		if i == 0 {
			im.raster.MoveTo(x, y)
		} else {
			im.raster.LineTo(x, y)
		}
	}
	im.raster.ClosePath()
	im.fill(style)
}

// DrawText draws text with its baseline at p.
func (im *Image) DrawText(p core.Point, text string, style editor.Style) {
	x, y := im.pixel(p)
	d := &font.Drawer{
		Dst:  im.img,
		Src:  image.NewUniform(im.palette.Color(style)),
		Face: im.face,
		Dot:  fixed.P(int(x), int(y)),
	}
	d.DrawString(text)
}

func (im *Image) begin() {
	b := im.img.Bounds()
	im.raster.Reset(b.Dx(), b.Dy())
	im.raster.DrawOp = draw.Over
}

func (im *Image) fill(style editor.Style) {
	im.raster.Draw(im.img, im.img.Bounds(), image.NewUniform(im.palette.Color(style)), image.Point{})
}
