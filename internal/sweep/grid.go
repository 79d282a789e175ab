// Package sweep runs a walk for every point of a parameter grid.
package sweep

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/photonwalk/internal/config"
	"github.com/san-kum/photonwalk/internal/experiment"
	"github.com/san-kum/photonwalk/internal/sim"
)

// Axis is one swept parameter: photons, mass, radius or opacity.
type Axis struct {
	Name   string
	Values []float64
}

type Point struct {
	Values map[string]float64
	Result *sim.Result
}

type Grid struct {
	axes []Axis
}

func NewGrid(axes ...Axis) *Grid {
	kept := make([]Axis, 0, len(axes))
	for _, a := range axes {
		if len(a.Values) > 0 {
			kept = append(kept, a)
		}
	}
	return &Grid{axes: kept}
}

// Size is the number of grid points.
func (g *Grid) Size() int {
	if len(g.axes) == 0 {
		return 0
	}
	n := 1
	for _, a := range g.axes {
		n *= len(a.Values)
	}
	return n
}

// Run builds and runs one experiment per grid point, in row-major order with
// the last axis varying fastest.
func (g *Grid) Run(
	ctx context.Context,
	build func(values map[string]float64) (*experiment.Experiment, error),
) ([]Point, error) {
	points := make([]Point, 0, g.Size())
	if g.Size() == 0 {
		return points, nil
	}
	err := g.runRecursive(ctx, 0, make(map[string]float64), build, &points)
	return points, err
}

func (g *Grid) runRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	build func(map[string]float64) (*experiment.Experiment, error),
	points *[]Point,
) error {
	if depth == len(g.axes) {
		exp, err := build(current)
		if err != nil {
			return fmt.Errorf("sweep point %v: %w", current, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return fmt.Errorf("sweep point %v: %w", current, err)
		}

		*points = append(*points, Point{Values: current, Result: result})
		return nil
	}

	axis := g.axes[depth]
	for _, val := range axis.Values {
		if err := ctx.Err(); err != nil {
			return err
		}
		newValues := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newValues[k] = v
		}
		newValues[axis.Name] = val

		if err := g.runRecursive(ctx, depth+1, newValues, build, points); err != nil {
			return err
		}
	}
	return nil
}

// Apply writes swept values into cfg.
func Apply(cfg *config.Config, values map[string]float64) error {
	for name, v := range values {
		switch name {
		case "photons":
			cfg.Params.Photons = int(v)
		case "mass":
			cfg.Params.Mass = v
		case "radius":
			cfg.Params.Radius = v
		case "opacity":
			cfg.Params.Opacity = v
		default:
			return fmt.Errorf("unknown sweep parameter: %s", name)
		}
	}
	return nil
}

// Best returns the escaped point with the fewest ticks.
func Best(points []Point) (Point, bool) {
	best := math.MaxInt
	var bestPoint Point
	found := false
	for _, p := range points {
		if p.Result.Reason != sim.ReasonEscaped {
			continue
		}
		if p.Result.Ticks < best {
			best = p.Result.Ticks
			bestPoint = p
			found = true
		}
	}
	return bestPoint, found
}
