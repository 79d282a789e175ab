// Package analysis provides statistics over photon walks.
//
//   - [Summarize]: mean, spread and quantiles of per-run tick counts
//   - [SampleSteps] and [CheckExponential]: empirical check of the step sampler
//   - [RadialProfile]: density and mean free path sampled across the star
//
// # Diffusion
//
// For an isotropic walk with mean step λ, the number of steps to travel a
// distance R grows like (R/λ)². Tick counts across seeds therefore have a
// long right tail; report the median alongside the mean.
package analysis
