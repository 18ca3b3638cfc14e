package dbg

import (
	"io"
	"math"

	"github.com/fogleman/gg"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/pkg/errors"

	"github.com/jakoblistabarth/schemapify-sub001/dcel"
)

// Padding around the drawing, in pixels
const drawPadding = 40

// Edge colors by orientation class
var classColors = map[dcel.Class][3]float64{
	dcel.NoClass:            {0.8, 0.8, 0.8},
	dcel.AlignedBasic:       {0, 1, 0},
	dcel.AlignedDeviating:   {1, 0.6, 0},
	dcel.UnalignedBasic:     {0, 1, 1},
	dcel.Evading:            {1, 0, 1},
	dcel.UnalignedDeviating: {1, 0, 0},
}

// Options controls what Draw puts on the canvas.
type Options struct {
	// Size of the longer side of the drawing, in pixels, padding excluded.
	Size float64
	// Label vertices with their readable names.
	Labels bool
}

// Draw renders the subdivision: faces filled, edges colored by class, and
// significant vertices marked.
func Draw(s *dcel.Subdivision, opts Options) *gg.Context {
	if opts.Size <= 0 {
		opts.Size = 800
	}
	box := s.BoundingBox()
	extent := math.Max(box.Max.X-box.Min.X, box.Max.Y-box.Min.Y)
	scale := 1.0
	if extent > 0 {
		scale = opts.Size / extent
	}

	width := int(scale*(box.Max.X-box.Min.X)) + drawPadding*2
	height := int(scale*(box.Max.Y-box.Min.Y)) + drawPadding*2
	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()
	c.SetFillRuleEvenOdd()

	// Flip the context so the origin is at the bottom left
	c.Translate(0, float64(height))
	c.Scale(1, -1)
	c.Translate(drawPadding, drawPadding)
	c.Scale(scale, scale)
	c.Translate(-box.Min.X, -box.Min.Y)

	for _, f := range s.BoundedFaces() {
		for _, ring := range s.FacePolygon(f) {
			c.MoveTo(ring[0].X, ring[0].Y)
			for _, p := range ring[1:] {
				c.LineTo(p.X, p.Y)
			}
			c.ClosePath()
		}
		c.SetRGBA(0.3, 0.2, 1, 0.4)
		c.Fill()
	}

	// Line widths are in user space, so undo the scale.
	c.SetLineWidth(2 / scale)
	for _, e := range s.SimpleEdges() {
		seg := s.Segment(e)
		rgb := classColors[s.Class(e)]
		c.SetRGB(rgb[0], rgb[1], rgb[2])
		c.DrawLine(seg.A.X, seg.A.Y, seg.B.X, seg.B.Y)
		c.Stroke()
	}

	for _, v := range s.Vertices() {
		if !s.IsSignificant(v) {
			continue
		}
		p := s.Point(v)
		c.SetRGB(1, 1, 1)
		c.DrawCircle(p.X, p.Y, 4/scale)
		c.Fill()
	}

	if opts.Labels {
		c.SetRGB(1, 1, 1)
		for _, v := range s.Vertices() {
			p := s.Point(v)
			// Text has to be drawn in device space or it comes out mirrored.
			x, y := c.TransformPoint(p.X, p.Y)
			c.Push()
			c.Identity()
			c.DrawStringAnchored(Name("v", int(v)), x+6, y-6, 0, 0)
			c.Pop()
		}
	}
	return c
}

// SavePNG draws the subdivision to a PNG file.
func SavePNG(s *dcel.Subdivision, path string, opts Options) error {
	if err := Draw(s, opts).SavePNG(path); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

// Cat prints a PNG file inline, for terminals that understand the iTerm image
// protocol.
func Cat(path string, w io.Writer) error {
	return imgcat.CatFile(path, w)
}
