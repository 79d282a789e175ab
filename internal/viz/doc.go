// Package viz renders a running photon walk in the terminal.
//
// The view uses the Bubble Tea framework and a braille [Canvas] for the star
// disk and photon trails, with an asciigraph chart of the furthest radius.
//
// # Key Bindings
//
//	Space - Pause/Resume the walk
//	Q     - Quit, cancelling the walk if it is still running
//
// After the walk terminates the final frame stays on screen until Q.
package viz
