// Package scene holds the decorative parts of a rendered walk: the star disk,
// background stars and per-photon colors. Nothing here affects the physics.
package scene

import (
	"math"

	"github.com/san-kum/photonwalk/internal/sampling"
)

// Field of view for background stars in step space.
const (
	FieldHalfWidth  = 720
	FieldHalfHeight = 404
)

// Palette lists photon colors as hex strings.
var Palette = []string{
	"#00ffff", // cyan
	"#00bfff", // deepskyblue
	"#1e90ff", // dodgerblue
	"#00fffe", // aqua
	"#40e0d0", // turquoise
	"#00ff7f", // springgreen
	"#00ff00", // lime
	"#7fff00", // chartreuse
	"#00fa9a", // mediumspringgreen
	"#ff69b4", // hotpink
	"#ff1493", // deeppink
	"#ff00ff", // magenta
	"#ee82ee", // violet
	"#da70d6", // orchid
	"#dda0dd", // plum
	"#fa8072", // salmon
	"#ff7f50", // coral
	"#ff6347", // tomato
	"#ffa500", // orange
	"#ff4500", // orangered
	"#ffffff", // white
}

const StarColor = "#ffff00"

type Point struct {
	X, Y float64
}

type Scene struct {
	RadiusSteps float64
	Background  []Point
	Colors      []string
}

// New builds a scene for a run. Decoration draws come from src, which should
// be independent of the physics stream.
func New(radiusSteps float64, photons, stars int, src sampling.Source) *Scene {
	s := &Scene{
		RadiusSteps: radiusSteps,
		Background:  make([]Point, stars),
		Colors:      make([]string, photons),
	}
	for i := range s.Background {
		s.Background[i] = Point{
			X: uniform(src, -FieldHalfWidth, FieldHalfWidth),
			Y: uniform(src, -FieldHalfHeight, FieldHalfHeight),
		}
	}
	for i := range s.Colors {
		s.Colors[i] = Palette[int(src.Float64()*float64(len(Palette)))%len(Palette)]
	}
	return s
}

// Color returns the color of photon i.
func (s *Scene) Color(i int) string {
	if len(s.Colors) == 0 {
		return Palette[0]
	}
	return s.Colors[i%len(s.Colors)]
}

// StarPolygon returns the five points of a pentagram of the given size,
// traced forward-then-turn-144° from (x, y).
func StarPolygon(x, y, size float64) []Point {
	pts := make([]Point, 0, 5)
	heading := 0.0
	for i := 0; i < 5; i++ {
		pts = append(pts, Point{X: x, Y: y})
		x += size * cosDeg(heading)
		y += size * sinDeg(heading)
		heading -= 144
	}
	return pts
}

func uniform(src sampling.Source, lo, hi float64) float64 {
	return lo + (hi-lo)*src.Float64()
}

func cosDeg(d float64) float64 { return math.Cos(d * math.Pi / 180) }
func sinDeg(d float64) float64 { return math.Sin(d * math.Pi / 180) }
