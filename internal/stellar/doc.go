// Package stellar derives the physical properties of a model star.
//
// The star is described in solar units and converted once into SI units:
//
//   - [MassToSI] and [RadiusToSI]: solar units to kilograms and meters
//   - [CentralDensity]: ρ_i = 3M / (πR³)
//   - [LocalDensity]: linear profile ρ_i·(1 − r/R), clamped to a positive floor
//   - [Properties]: the immutable bundle consumed by the photon walker
//
// # Step space
//
// Photon positions live in step space, the 2D coordinate system used for
// drawing. One solar radius spans [StepsPerSolarRadius] steps, so a star of
// radius R☉ has a surface at 200·R☉ steps regardless of its physical size.
package stellar
