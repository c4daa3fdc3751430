package draw

import "unicode/utf8"

// Frame adapts a Canvas to the drawing surface used by game entities.
// Shapes go straight to the canvas; text is queued and written after the
// canvas so it sits on top of the pixels.
type Frame struct {
	canvas *Canvas
	labels []label
	dx, dy float64 // screen shake offset in logical units
}

type label struct {
	x, y float64
	text string
}

// NewFrame wraps canvas.
func NewFrame(canvas *Canvas) *Frame {
	return &Frame{canvas: canvas}
}

// Reset clears the canvas and pending labels for a new frame.
func (f *Frame) Reset() {
	f.canvas.Clear()
	f.labels = f.labels[:0]
	f.dx, f.dy = 0, 0
}

// SetShake offsets everything drawn afterwards by (dx, dy).
func (f *Frame) SetShake(dx, dy float64) {
	f.dx, f.dy = dx, dy
}

// Width returns the logical width of the view.
func (f *Frame) Width() float64 { return f.canvas.LogicalWidth() }

// Height returns the logical height of the view.
func (f *Frame) Height() float64 { return f.canvas.LogicalHeight() }

// Circle draws a circle outline or disc.
func (f *Frame) Circle(x, y, r float64, filled bool) {
	f.canvas.DrawCircle(Point{X: x + f.dx, Y: y + f.dy}, r, filled)
}

// Ellipse draws a rotated ellipse.
func (f *Frame) Ellipse(x, y, rx, ry, rotation float64, filled bool) {
	f.canvas.DrawEllipse(Point{X: x + f.dx, Y: y + f.dy}, rx, ry, rotation, filled)
}

// Polygon draws a closed polygon. points is not retained.
func (f *Frame) Polygon(points []Point, filled bool) {
	if f.dx != 0 || f.dy != 0 {
		for i := range points {
			points[i].X += f.dx
			points[i].Y += f.dy
		}
	}
	f.canvas.DrawPolygon(points, filled)
}

// Line draws a straight segment.
func (f *Frame) Line(x1, y1, x2, y2 float64) {
	f.canvas.DrawLine(Point{X: x1 + f.dx, Y: y1 + f.dy}, Point{X: x2 + f.dx, Y: y2 + f.dy})
}

// Dot sets a single pixel.
func (f *Frame) Dot(x, y float64) {
	f.canvas.SetFloat(x+f.dx, y+f.dy)
}

// Text queues s centred on the logical point (x, y). Text is not shaken.
func (f *Frame) Text(x, y float64, s string) {
	if s == "" {
		return
	}
	f.labels = append(f.labels, label{x: x, y: y, text: s})
}

// Render writes the canvas followed by the queued labels.
// Labels that do not fit on screen are dropped.
func (f *Frame) Render(cw *ChunkWriter) {
	f.canvas.Render(cw)

	width := f.canvas.TerminalWidth()
	height := f.canvas.TerminalHeight()
	for _, l := range f.labels {
		n := utf8.RuneCountInString(l.text)
		col, row := f.canvas.LogicalToTerminal(l.x, l.y)
		col -= n / 2
		if row < 1 || row > height || col < 1 || col+n-1 > width {
			continue
		}
		cw.WriteAt(col, row, l.text)
		f.canvas.MarkTextDirty(col, row, n)
	}
}
