// Package viz draws the pool table in the terminal and as SVG.
//
// [Model] is a Bubble Tea program that steps a simulator at 60 Hz while the
// player orbits the cue ball and fires. [App] wraps it with a preset menu.
// The table is drawn on a Braille [Canvas], top-down or from the shooter's
// eye.
//
// # Key Bindings
//
//	←/→    - Yaw the aim
//	↑/↓    - Pitch the aim
//	Space  - Fire the current weapon
//	W      - Cycle weapons
//	V      - Toggle top-down / shooter view
//	+/-    - Camera distance
//	P      - Pause/Resume
//	R      - Rerack
//	T      - Cycle color themes
//	G      - Toggle GIF recording
//	?      - Show help overlay
//	Q      - Quit
package viz
