package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/photonwalk/internal/scene"
	"github.com/san-kum/photonwalk/internal/storage"
)

// TrajectorySVG renders the same picture as WritePNG as an SVG document.
func TrajectorySVG(sc *scene.Scene, frames []storage.Frame) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#000000"/>
`, Width, Height, Width, Height))

	if len(sc.Background) > 0 {
		sb.WriteString(`<g fill="#ffffff">` + "\n")
		for _, p := range sc.Background {
			sb.WriteString(`<polygon points="`)
			for i, q := range scene.StarPolygon(p.X, p.Y, backgroundStarSize) {
				x, y := toPixel(q.X, q.Y)
				if i > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			}
			sb.WriteString(`"/>` + "\n")
		}
		sb.WriteString("</g>\n")
	}

	cx, cy := toPixel(0, 0)
	sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, cx, cy, sc.RadiusSteps, scene.StarColor))

	for i, path := range paths(sc, frames) {
		if len(path) < 2 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="%.1f" d="M`, sc.Color(i), pathWidth))
		for j, p := range path {
			if j == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", p.X, p.Y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", p.X, p.Y))
			}
		}
		sb.WriteString(`"/>` + "\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}
