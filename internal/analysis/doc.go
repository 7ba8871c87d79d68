// Package analysis post-processes recorded runs.
//
// The package includes:
//
//   - [PowerSpectrum] and [DominantFrequency]: spectral content of a trace
//   - [SettleTime]: when the table comes to rest
//   - [Divergence] and [GrowthRate]: sensitivity of a break to a perturbation
//   - [ExtractTrajectory] and [TrajectoryToASCII]: top-down ball paths
//
// # Sensitivity
//
// A break is chaotic in practice: nudging the cue by a micron sends the
// rack somewhere else. Running the same preset twice with a tiny offset and
// comparing the recorded frames measures how fast that happens:
//
//	d := analysis.Divergence(base.Frames, nudged.Frames)
//	rate := analysis.GrowthRate(d, times, 1e-6)
package analysis
