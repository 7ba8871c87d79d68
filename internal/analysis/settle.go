package analysis

// SettleTime returns the first time after which every value stays below
// threshold, or -1 if the trace never settles.
func SettleTime(values, times []float64, threshold float64) float64 {
	n := min(len(values), len(times))
	settled := -1
	for i := n - 1; i >= 0; i-- {
		if values[i] >= threshold {
			break
		}
		settled = i
	}
	if settled < 0 {
		return -1
	}
	return times[settled]
}
