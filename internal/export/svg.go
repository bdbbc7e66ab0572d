package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/nbodysim/internal/dynamo"
	"github.com/san-kum/nbodysim/internal/viz"
	"gonum.org/v1/gonum/spatial/r3"
)

// Palette cycles across bodies in trajectory exports.
var Palette = []string{"#ff00ff", "#00ffff", "#ffff00", "#00ff00", "#ff8800", "#ff4444"}

// CanvasToSVG converts a braille canvas to SVG, one circle per lit dot.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	pw, ph := canvas.PixelSize()
	width := float64(pw) * scale
	height := float64(ph) * scale

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#00ff00">
`, width, height, width, height))

	dotRadius := scale * 0.4
	for y := 0; y < ph; y++ {
		for x := 0; x < pw; x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			sb.WriteString(fmt.Sprintf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

type bounds struct{ minX, maxX, minY, maxY float64 }

func (b *bounds) add(p r3.Vec) {
	b.minX, b.maxX = math.Min(b.minX, p.X), math.Max(b.maxX, p.X)
	b.minY, b.maxY = math.Min(b.minY, p.Y), math.Max(b.maxY, p.Y)
}

// pad widens the box by 10% per axis; a degenerate axis gets unit range.
func (b *bounds) pad() {
	rx, ry := b.maxX-b.minX, b.maxY-b.minY
	if rx == 0 {
		rx = 1
	}
	if ry == 0 {
		ry = 1
	}
	b.minX -= rx * 0.1
	b.maxX += rx * 0.1
	b.minY -= ry * 0.1
	b.maxY += ry * 0.1
}

func (b *bounds) project(p r3.Vec, width, height int) (float64, float64) {
	x := (p.X - b.minX) / (b.maxX - b.minX) * float64(width)
	y := float64(height) - (p.Y-b.minY)/(b.maxY-b.minY)*float64(height)
	return x, y
}

// TrajectoriesToSVG draws every body's path projected on the xy plane, one
// colour per body, with a dot at the last position. Paths with fewer than
// two points are skipped; if nothing is drawable the result is empty.
func TrajectoriesToSVG(paths [][]r3.Vec, width, height int) string {
	b := bounds{math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)}
	drawable := 0
	for _, path := range paths {
		if len(path) < 2 {
			continue
		}
		drawable++
		for _, p := range path {
			b.add(p)
		}
	}
	if drawable == 0 {
		return ""
	}
	b.pad()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for i, path := range paths {
		if len(path) < 2 {
			continue
		}
		stroke := Palette[i%len(Palette)]
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, stroke))
		for j, p := range path {
			x, y := b.project(p, width, height)
			if j == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
		x, y := b.project(path[len(path)-1], width, height)
		sb.WriteString(fmt.Sprintf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"3\" fill=\"%s\"/>\n", x, y, stroke))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// FrameToSVG draws the trails carried by a single frame.
func FrameToSVG(f dynamo.Frame, width, height int) string {
	paths := make([][]r3.Vec, len(f.Bodies))
	for i, body := range f.Bodies {
		paths[i] = body.Trail
	}
	return TrajectoriesToSVG(paths, width, height)
}

// Paths splits a frame sequence into one position path per body. Bodies
// added mid-run start their path at the frame they first appear in.
func Paths(frames []dynamo.Frame) [][]r3.Vec {
	var paths [][]r3.Vec
	for _, f := range frames {
		for i, body := range f.Bodies {
			if i >= len(paths) {
				paths = append(paths, nil)
			}
			paths[i] = append(paths[i], body.Position)
		}
	}
	return paths
}
