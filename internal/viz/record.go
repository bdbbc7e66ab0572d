package viz

import (
	"errors"
	"image"
	"image/color"
	"image/gif"
	"io"
)

const (
	charW = 8
	charH = 16
)

var errNoFrames = errors.New("viz: no frames recorded")

// Recorder rasterises canvas frames into an animated GIF.
type Recorder struct {
	width, height int
	frames        []*image.Paletted
}

func NewRecorder(w, h int) *Recorder {
	return &Recorder{width: w, height: h}
}

func (r *Recorder) Len() int { return len(r.frames) }

// Capture renders each lit braille dot as a block of white pixels.
func (r *Recorder) Capture(c *Canvas) {
	img := image.NewPaletted(image.Rect(0, 0, r.width*charW, r.height*charH), color.Palette{color.Black, color.White})
	dotW, dotH := charW/2, charH/4
	pw, ph := c.PixelSize()
	for y := 0; y < ph && y/4 < r.height; y++ {
		for x := 0; x < pw && x/2 < r.width; x++ {
			if !c.IsSet(x, y) {
				continue
			}
			for py := 0; py < dotH; py++ {
				for px := 0; px < dotW; px++ {
					img.SetColorIndex(x*dotW+px, y*dotH+py, 1)
				}
			}
		}
	}
	r.frames = append(r.frames, img)
}

func (r *Recorder) Encode(w io.Writer) error {
	if len(r.frames) == 0 {
		return errNoFrames
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 2)
	}
	return gif.EncodeAll(w, &anim)
}
