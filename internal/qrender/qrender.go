// Package qrender draws circuit diagrams into images for the HTTP
// service.
package qrender

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/kegliz/qtranslate/qc/circuit"
)

type Renderer struct {
	lineSpacing int
	topY        int // starting position for the first wire and its label
	lineOffsetX int // indentation for the wires
	textOffsetX int
	colWidth    int
	boxSize     int
	inputText   string
}

// NewDefaultRenderer creates a Renderer with default values.
func NewDefaultRenderer() *Renderer {
	return &Renderer{
		lineSpacing: 40,
		topY:        20,
		lineOffsetX: 40,
		textOffsetX: 5,
		colWidth:    40,
		boxSize:     26,
		inputText:   "|0>",
	}
}

// RenderCircuit renders the circuit's program order left to right, one
// column per operation.
func (qr Renderer) RenderCircuit(c *circuit.Circuit) *image.RGBA {
	cols := len(c.Operations())
	width := qr.lineOffsetX + (cols+1)*qr.colWidth
	if width < 300 {
		width = 300
	}
	height := qr.topY + c.Qubits()*qr.lineSpacing

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)

	for q := 0; q < c.Qubits(); q++ {
		y := qr.wireY(q)
		qr.drawText(img, qr.textOffsetX, y+4, qr.inputText)
		qr.hline(img, qr.lineOffsetX, width-qr.colWidth/2, y)
	}

	for i, op := range c.Operations() {
		x := qr.lineOffsetX + qr.colWidth/2 + i*qr.colWidth
		label := op.G.Name()
		if len(label) > 3 {
			label = label[:3]
		}
		// Vertical connector across the op's wire span.
		minQ, maxQ := op.Qubits[0], op.Qubits[0]
		for _, q := range op.Qubits {
			if q < minQ {
				minQ = q
			}
			if q > maxQ {
				maxQ = q
			}
		}
		if minQ != maxQ {
			qr.vline(img, x, qr.wireY(minQ), qr.wireY(maxQ))
		}
		for _, q := range op.Qubits {
			qr.drawBox(img, x, qr.wireY(q), label)
		}
		if op.Cbit >= 0 {
			qr.drawText(img, x-qr.boxSize/2, qr.wireY(op.Qubits[0])+qr.boxSize, fmt.Sprintf("c%d", op.Cbit))
		}
	}
	return img
}

func (qr Renderer) wireY(q int) int { return qr.topY + q*qr.lineSpacing }

func (qr Renderer) drawBox(img *image.RGBA, cx, cy int, label string) {
	half := qr.boxSize / 2
	box := image.Rect(cx-half, cy-half, cx+half, cy+half)
	draw.Draw(img, box, &image.Uniform{color.White}, image.Point{}, draw.Src)
	for x := box.Min.X; x < box.Max.X; x++ {
		img.Set(x, box.Min.Y, color.Black)
		img.Set(x, box.Max.Y-1, color.Black)
	}
	for y := box.Min.Y; y < box.Max.Y; y++ {
		img.Set(box.Min.X, y, color.Black)
		img.Set(box.Max.X-1, y, color.Black)
	}
	qr.drawText(img, cx-half+3, cy+4, label)
}

func (qr Renderer) hline(img *image.RGBA, x0, x1, y int) {
	for x := x0; x < x1; x++ {
		img.Set(x, y, color.Black)
	}
}

func (qr Renderer) vline(img *image.RGBA, x, y0, y1 int) {
	for y := y0; y < y1; y++ {
		img.Set(x, y, color.Black)
	}
}

func (qr Renderer) drawText(img *image.RGBA, x, y int, s string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
