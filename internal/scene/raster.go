package scene

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// RenderOptions controls the software preview renderer.
type RenderOptions struct {
	Width       int
	Height      int
	Supersample int
	Background  color.NRGBA
	DrawGrid    bool
	DrawAxes    bool
	DrawTicks   bool
}

// DefaultRenderOptions renders a 960x540 preview at 3x supersampling.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Width:       960,
		Height:      540,
		Supersample: 3,
		Background:  color.NRGBA{R: 9, G: 9, B: 11, A: 255},
		DrawGrid:    true,
		DrawAxes:    true,
		DrawTicks:   true,
	}
}

// Rasterize draws the scene through cam into an image of opts.Width x opts.Height.
// Lines are drawn at opts.Supersample times the target size and downsampled.
func Rasterize(s Scene, cam Camera, opts RenderOptions) *image.NRGBA {
	ss := opts.Supersample
	if ss < 1 {
		ss = 1
	}
	w, h := opts.Width*ss, opts.Height*ss
	canvas := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	var lines []Line
	if opts.DrawGrid {
		lines = append(lines, s.Grid...)
	}
	if opts.DrawAxes {
		lines = append(lines, s.Axes...)
	}
	if len(s.Plan.Points) >= 2 {
		lines = append(lines, s.Plan)
	}
	lines = append(lines, s.Segments...)

	for _, ln := range lines {
		c := ParseColor(ln.Color)
		radius := math.Max(0.5, ln.Width*float64(ss)/2)
		for i := 1; i < len(ln.Points); i++ {
			x0, y0, ok0 := cam.Project(ln.Points[i-1], w, h)
			x1, y1, ok1 := cam.Project(ln.Points[i], w, h)
			if !ok0 || !ok1 {
				continue
			}
			strokeLine(canvas, x0, y0, x1, y1, radius, c)
		}
	}

	out := canvas
	if ss > 1 {
		out = image.NewNRGBA(image.Rect(0, 0, opts.Width, opts.Height))
		draw.CatmullRom.Scale(out, out.Bounds(), canvas, canvas.Bounds(), draw.Src, nil)
	}

	if opts.DrawTicks {
		for _, t := range s.Ticks {
			x, y, ok := cam.Project(t.Pos, opts.Width, opts.Height)
			if !ok {
				continue
			}
			d := font.Drawer{
				Dst:  out,
				Src:  image.NewUniform(ParseColor(t.Color)),
				Face: basicfont.Face7x13,
				Dot:  fixed.P(int(x)+3, int(y)-3),
			}
			d.DrawString(t.Text)
		}
	}
	return out
}

// EncodeWebP writes img as a lossless WebP.
func EncodeWebP(w io.Writer, img image.Image) error {
	if err := nativewebp.Encode(w, img, nil); err != nil {
		return fmt.Errorf("encode webp: %w", err)
	}
	return nil
}

// strokeLine stamps squares of the given radius along the segment after
// clipping it to the canvas.
func strokeLine(img *image.NRGBA, x0, y0, x1, y1, radius float64, c color.NRGBA) {
	b := img.Bounds()
	x0, y0, x1, y1, ok := clip(x0, y0, x1, y1,
		float64(b.Min.X)-radius, float64(b.Min.Y)-radius,
		float64(b.Max.X)+radius, float64(b.Max.Y)+radius)
	if !ok {
		return
	}
	steps := int(math.Ceil(math.Max(math.Abs(x1-x0), math.Abs(y1-y0))))
	if steps == 0 {
		steps = 1
	}
	r := int(math.Ceil(radius))
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		cx := int(math.Round(x0 + t*(x1-x0)))
		cy := int(math.Round(y0 + t*(y1-y0)))
		for dy := -r + 1; dy < r; dy++ {
			for dx := -r + 1; dx < r; dx++ {
				p := image.Point{X: cx + dx, Y: cy + dy}
				if p.In(b) {
					img.SetNRGBA(p.X, p.Y, c)
				}
			}
		}
	}
}

// clip is Liang-Barsky clipping of a segment to [xmin,xmax]x[ymin,ymax].
func clip(x0, y0, x1, y1, xmin, ymin, xmax, ymax float64) (float64, float64, float64, float64, bool) {
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, x0 - xmin},
		{dx, xmax - x0},
		{-dy, y0 - ymin},
		{dy, ymax - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, r)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

// ParseColor accepts "#rrggbb", "#rgb" and "rgb(r,g,b)". Anything else is white.
func ParseColor(s string) color.NRGBA {
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	var r, g, b uint8
	switch {
	case strings.HasPrefix(s, "rgb("):
		if _, err := fmt.Sscanf(s, "rgb(%d,%d,%d)", &r, &g, &b); err != nil {
			return white
		}
	case strings.HasPrefix(s, "#") && len(s) == 7:
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
			return white
		}
	case strings.HasPrefix(s, "#") && len(s) == 4:
		if _, err := fmt.Sscanf(s, "#%1x%1x%1x", &r, &g, &b); err != nil {
			return white
		}
		r, g, b = r*17, g*17, b*17
	default:
		return white
	}
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}
