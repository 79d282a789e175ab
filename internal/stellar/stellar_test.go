package stellar

import (
	"errors"
	"math"
	"testing"
)

func TestUnitConversion(t *testing.T) {
	if got := MassToSI(1); got != 1.989e30 {
		t.Errorf("MassToSI(1) = %g, want 1.989e30", got)
	}
	if got := RadiusToSI(2); got != 2*6.95e8 {
		t.Errorf("RadiusToSI(2) = %g, want %g", got, 2*6.95e8)
	}
}

func TestCentralDensity(t *testing.T) {
	rho, err := CentralDensity(MassToSI(1), RadiusToSI(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(rho-5657.854) > 0.01 {
		t.Errorf("expected solar central density ~5657.854, got %f", rho)
	}
}

func TestCentralDensity_PositiveOverClamps(t *testing.T) {
	masses := []float64{0.1, 0.5, 1, 5, 25}
	radii := []float64{0.2, 0.5, 1, 1.5, 2}
	for _, m := range masses {
		for _, r := range radii {
			rho, err := CentralDensity(MassToSI(m), RadiusToSI(r))
			if err != nil {
				t.Fatalf("mass=%g radius=%g: %v", m, r, err)
			}
			if rho <= 0 || math.IsInf(rho, 0) || math.IsNaN(rho) {
				t.Errorf("mass=%g radius=%g: density %g not positive and finite", m, r, rho)
			}
		}
	}
}

func TestCentralDensity_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mass   float64
		radius float64
		field  string
	}{
		{"zero mass", 0, 1, "mass"},
		{"negative mass", -1, 1, "mass"},
		{"zero radius", 1, 0, "radius"},
		{"negative radius", 1, -2, "radius"},
		{"NaN mass", math.NaN(), 1, "mass"},
		{"infinite mass", math.Inf(1), 1, "mass"},
		{"NaN radius", 1, math.NaN(), "radius"},
		{"negative infinite radius", 1, math.Inf(-1), "radius"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CentralDensity(tt.mass, tt.radius)
			if !errors.Is(err, ErrConfiguration) {
				t.Fatalf("expected ErrConfiguration, got %v", err)
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) || cfgErr.Field != tt.field {
				t.Errorf("expected ConfigError on %q, got %v", tt.field, err)
			}
		})
	}
}

func TestLocalDensity_FloorAndMonotonic(t *testing.T) {
	const rhoI, radius = 5657.854, 6.95e8

	prev := math.Inf(1)
	for i := 0; i <= 400; i++ {
		r := float64(i) / 200 * radius
		rho := LocalDensity(rhoI, r, radius)
		if rho < DefaultDensityFloor {
			t.Fatalf("r=%g: density %g below floor", r, rho)
		}
		if rho > prev {
			t.Fatalf("r=%g: density increased from %g to %g", r, prev, rho)
		}
		prev = rho
	}

	if got := LocalDensity(rhoI, 0, radius); got != rhoI {
		t.Errorf("density at center = %g, want %g", got, rhoI)
	}
	if got := LocalDensity(rhoI, radius, radius); got != DefaultDensityFloor {
		t.Errorf("density at surface = %g, want floor", got)
	}
	if got := LocalDensity(rhoI, 3*radius, radius); got != DefaultDensityFloor {
		t.Errorf("density outside = %g, want floor", got)
	}
}

func TestNewProperties(t *testing.T) {
	p, err := NewProperties(1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.RadiusSteps() != 200 {
		t.Errorf("expected 200 steps radius, got %f", p.RadiusSteps())
	}
	if math.Abs(p.StepsToMeters-6.95e8/200) > 1e-3 {
		t.Errorf("unexpected steps-to-meters %f", p.StepsToMeters)
	}
	if p.DensityFloor != DefaultDensityFloor {
		t.Errorf("expected default floor, got %g", p.DensityFloor)
	}
	if got := p.DensityAtSteps(100); math.Abs(got-p.CentralDensity/2) > 1e-9 {
		t.Errorf("density halfway = %f, want %f", got, p.CentralDensity/2)
	}
}

func TestNewProperties_StepsToMetersIndependentOfRadius(t *testing.T) {
	small, _ := NewProperties(1, 0.2)
	large, _ := NewProperties(1, 2.0)
	if math.Abs(small.StepsToMeters-large.StepsToMeters) > 1e-6 {
		t.Errorf("expected equal scale, got %f and %f", small.StepsToMeters, large.StepsToMeters)
	}
	if small.RadiusSteps() != 40 {
		t.Errorf("expected 40 steps, got %f", small.RadiusSteps())
	}
}

func TestNewProperties_Invalid(t *testing.T) {
	tests := []struct {
		name                string
		mass, radius, floor float64
	}{
		{"zero mass", 0, 1, DefaultDensityFloor},
		{"negative radius", 1, -1, DefaultDensityFloor},
		{"zero floor", 1, 1, 0},
		{"NaN mass", math.NaN(), 1, DefaultDensityFloor},
		{"infinite radius", 1, math.Inf(1), DefaultDensityFloor},
		{"NaN floor", 1, 1, math.NaN()},
		{"infinite floor", 1, 1, math.Inf(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewPropertiesWithFloor(tt.mass, tt.radius, tt.floor); !errors.Is(err, ErrConfiguration) {
				t.Errorf("expected ErrConfiguration, got %v", err)
			}
		})
	}
}

func TestConfigError(t *testing.T) {
	err := &ConfigError{Field: "radius", Value: -2}
	expected := "stellar: radius must be positive, got -2"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}
