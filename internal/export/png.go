package export

import (
	"io"

	"github.com/gogpu/gg"

	"github.com/san-kum/photonwalk/internal/scene"
	"github.com/san-kum/photonwalk/internal/storage"
)

const (
	backgroundStarSize = 6
	pathWidth          = 1.5
)

func draw(sc *scene.Scene, frames []storage.Frame) (*gg.Context, error) {
	dc := gg.NewContext(Width, Height)
	dc.ClearWithColor(gg.Black)

	dc.SetColor(gg.White)
	for _, p := range sc.Background {
		pts := scene.StarPolygon(p.X, p.Y, backgroundStarSize)
		x, y := toPixel(pts[0].X, pts[0].Y)
		dc.MoveTo(x, y)
		for _, q := range pts[1:] {
			x, y = toPixel(q.X, q.Y)
			dc.LineTo(x, y)
		}
		dc.ClosePath()
		if err := dc.Fill(); err != nil {
			dc.Close()
			return nil, err
		}
	}

	cx, cy := toPixel(0, 0)
	dc.SetHexColor(scene.StarColor)
	dc.DrawCircle(cx, cy, sc.RadiusSteps)
	if err := dc.Fill(); err != nil {
		dc.Close()
		return nil, err
	}

	dc.SetLineWidth(pathWidth)
	for i, path := range paths(sc, frames) {
		if len(path) < 2 {
			continue
		}
		dc.SetHexColor(sc.Color(i))
		dc.MoveTo(path[0].X, path[0].Y)
		for _, p := range path[1:] {
			dc.LineTo(p.X, p.Y)
		}
		if err := dc.Stroke(); err != nil {
			dc.Close()
			return nil, err
		}
	}
	return dc, nil
}

// WritePNG renders the scene and photon paths to a PNG file.
func WritePNG(path string, sc *scene.Scene, frames []storage.Frame) error {
	dc, err := draw(sc, frames)
	if err != nil {
		return err
	}
	defer dc.Close()
	return dc.SavePNG(path)
}

// EncodePNG is WritePNG for an arbitrary writer.
func EncodePNG(w io.Writer, sc *scene.Scene, frames []storage.Frame) error {
	dc, err := draw(sc, frames)
	if err != nil {
		return err
	}
	defer dc.Close()
	return dc.EncodePNG(w)
}
