package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"TacticBoard/internal/state"
)

// Options controls how board units map onto the page.
type Options struct {
	// Scale is millimetres per board unit.
	Scale float64
	// Margin is added to both axes, in millimetres.
	Margin float64
}

func DefaultOptions() Options {
	return Options{Scale: 2.4, Margin: 0}
}

// WritePDF renders doc onto a landscape A4 page and writes it to w.
func WritePDF(w io.Writer, doc state.Document, opts Options) error {
	if opts.Scale <= 0 {
		opts.Scale = DefaultOptions().Scale
	}
	p := gofpdf.New("L", "mm", "A4", "")
	p.SetTitle(doc.SaveName, true)
	p.AddPage()

	r := renderer{pdf: p, opts: opts}
	r.field()
	for _, entry := range doc.Chesses {
		for _, t := range entry.Tokens {
			r.token(t)
		}
	}
	for _, d := range doc.Frisbees {
		r.disc(d)
	}
	p.SetDrawColor(255, 0, 0)
	p.SetLineWidth(0.5)
	for _, s := range doc.Strokes {
		r.stroke(s)
	}
	for _, c := range doc.Curves {
		r.curve(c)
	}

	if err := p.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	if err := p.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

type renderer struct {
	pdf  *gofpdf.Fpdf
	opts Options
}

func (r renderer) x(v float64) float64  { return v*r.opts.Scale + r.opts.Margin }
func (r renderer) y(v float64) float64  { return v*r.opts.Scale + r.opts.Margin }
func (r renderer) mm(v float64) float64 { return v * r.opts.Scale }

func (r renderer) field() {
	f := state.Field
	r.pdf.SetFillColor(0x35, 0xcc, 0x5a)
	r.pdf.SetDrawColor(0, 0, 0)
	r.pdf.SetLineWidth(0.3)
	r.pdf.Rect(r.x(f.X), r.y(f.Y), r.mm(f.Width), r.mm(f.Height), "FD")
	for _, ratio := range []float64{state.EndZoneRatio, 1 - state.EndZoneRatio} {
		lx := f.X + f.Width*ratio
		r.pdf.Line(r.x(lx), r.y(f.Y), r.x(lx), r.y(f.Y+f.Height))
	}
}

func (r renderer) token(t state.Positioned[state.ChessToken]) {
	c := t.Object.Color.RGBA()
	r.pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
	r.pdf.SetDrawColor(0, 0, 0)
	r.pdf.SetLineWidth(0.1)
	cx, cy := r.x(t.Position.X), r.y(t.Position.Y)
	r.pdf.Circle(cx, cy, r.mm(state.TokenRadius), "FD")

	label := strconv.Itoa(t.Object.ID)
	r.pdf.SetFont("Helvetica", "", 8)
	r.pdf.SetTextColor(0, 0, 0)
	r.pdf.Text(cx-r.pdf.GetStringWidth(label)/2, cy+1, label)
}

func (r renderer) disc(d state.Positioned[state.Disc]) {
	cx, cy := r.x(d.Position.X), r.y(d.Position.Y)
	radius := r.mm(state.DiscRadius)
	r.pdf.SetDrawColor(0, 0, 0)
	r.pdf.SetLineWidth(0.1)
	r.pdf.SetFillColor(255, 255, 255)
	r.pdf.Circle(cx, cy, radius, "FD")
	r.pdf.SetFillColor(255, 0, 0)
	r.pdf.Circle(cx, cy, radius*0.7, "F")
	r.pdf.SetFillColor(255, 255, 255)
	r.pdf.Circle(cx, cy, radius*0.3, "F")
}

func (r renderer) stroke(s state.Stroke) {
	path := s.Path()
	for i := 1; i < len(path); i++ {
		r.pdf.Line(r.x(path[i-1].X), r.y(path[i-1].Y), r.x(path[i].X), r.y(path[i].Y))
	}
}

// curve draws quadratic and cubic curves. Points are ordered start, end,
// control[, control2]; anything else is skipped.
func (r renderer) curve(c state.Curve) {
	pts := c.Points
	switch c.Kind() {
	case state.CurveQuadratic:
		r.pdf.Curve(r.x(pts[0].X), r.y(pts[0].Y),
			r.x(pts[2].X), r.y(pts[2].Y),
			r.x(pts[1].X), r.y(pts[1].Y), "D")
	case state.CurveCubic:
		r.pdf.CurveBezierCubic(r.x(pts[0].X), r.y(pts[0].Y),
			r.x(pts[2].X), r.y(pts[2].Y),
			r.x(pts[3].X), r.y(pts[3].Y),
			r.x(pts[1].X), r.y(pts[1].Y), "D")
	}
}
