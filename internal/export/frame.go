// Package export renders recorded walks as PNG and SVG images.
package export

import (
	"github.com/san-kum/photonwalk/internal/scene"
	"github.com/san-kum/photonwalk/internal/storage"
)

// Image size covers the background star field.
const (
	Width  = 2 * scene.FieldHalfWidth
	Height = 2 * scene.FieldHalfHeight
)

// toPixel maps step space, origin at the star center with y up, to image
// coordinates.
func toPixel(x, y float64) (float64, float64) {
	return x + scene.FieldHalfWidth, scene.FieldHalfHeight - y
}

// paths returns the pixel polyline of each photon, starting at the center.
func paths(sc *scene.Scene, frames []storage.Frame) [][]scene.Point {
	n := len(sc.Colors)
	for _, f := range frames {
		if len(f.Population) > n {
			n = len(f.Population)
		}
	}

	out := make([][]scene.Point, n)
	cx, cy := toPixel(0, 0)
	for i := range out {
		out[i] = append(make([]scene.Point, 0, len(frames)+1), scene.Point{X: cx, Y: cy})
	}
	for _, f := range frames {
		for i, p := range f.Population {
			x, y := toPixel(p.X, p.Y)
			out[i] = append(out[i], scene.Point{X: x, Y: y})
		}
	}
	return out
}
