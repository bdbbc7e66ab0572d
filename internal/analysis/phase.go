package analysis

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/nbodysim/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r3"
)

var ErrBadComponent = errors.New("analysis: unknown state component")

// Components names the per-body state columns a portrait can use.
var Components = []string{"x", "y", "z", "vx", "vy", "vz"}

// Portrait holds one body's trajectory projected onto two state components,
// either a position plane ("x", "y") or a phase plane ("x", "vx").
type Portrait struct {
	Body   int
	XName  string
	YName  string
	Points []struct{ X, Y float64 }
}

func component(b dynamo.BodyFrame, name string) (float64, error) {
	switch name {
	case "x":
		return b.Position.X, nil
	case "y":
		return b.Position.Y, nil
	case "z":
		return b.Position.Z, nil
	case "vx":
		return b.Velocity.X, nil
	case "vy":
		return b.Velocity.Y, nil
	case "vz":
		return b.Velocity.Z, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadComponent, name)
}

// OrbitPortrait collects body's (xName, yName) pairs across frames. Frames
// in which the body does not yet exist are skipped.
func OrbitPortrait(frames []dynamo.Frame, body int, xName, yName string) (*Portrait, error) {
	probe := dynamo.BodyFrame{}
	if _, err := component(probe, xName); err != nil {
		return nil, err
	}
	if _, err := component(probe, yName); err != nil {
		return nil, err
	}
	if body < 0 {
		return nil, fmt.Errorf("%w: %d", dynamo.ErrUnknownBody, body)
	}

	p := &Portrait{Body: body, XName: xName, YName: yName}
	for _, f := range frames {
		if body >= len(f.Bodies) {
			continue
		}
		x, _ := component(f.Bodies[body], xName)
		y, _ := component(f.Bodies[body], yName)
		p.Points = append(p.Points, struct{ X, Y float64 }{x, y})
	}
	if len(p.Points) == 0 {
		return nil, fmt.Errorf("%w: %d", dynamo.ErrUnknownBody, body)
	}
	return p, nil
}

// SeparationSeries is the distance between bodies i and j in every frame
// that holds both.
func SeparationSeries(frames []dynamo.Frame, i, j int) []float64 {
	out := make([]float64, 0, len(frames))
	for _, f := range frames {
		if i >= len(f.Bodies) || j >= len(f.Bodies) {
			continue
		}
		out = append(out, r3.Norm(r3.Sub(f.Bodies[i].Position, f.Bodies[j].Position)))
	}
	return out
}

// PortraitToASCII converts a portrait to ASCII art
func PortraitToASCII(portrait *Portrait, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range portrait.Points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for _, p := range portrait.Points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))

		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	// Draw axes if they cross the visible area
	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if col >= 0 && col < width && canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if row >= 0 && row < height && canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
