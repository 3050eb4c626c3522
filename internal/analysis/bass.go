package analysis

// Bass extraction parameters.
const (
	BassBins    = 10
	BassDivisor = 150.0
	BassCap     = 2.0
)

// BassEnergy is the mean of the first BassBins entries of a snapshot, or of
// all entries when the snapshot is shorter.
func BassEnergy(snapshot []byte) float64 {
	n := BassBins
	if len(snapshot) < n {
		n = len(snapshot)
	}
	if n == 0 {
		return 0
	}
	var sum int
	for _, b := range snapshot[:n] {
		sum += int(b)
	}
	return float64(sum) / float64(n)
}

// NormalizeBass maps bass energy to a visual multiplier in [0, BassCap].
func NormalizeBass(energy float64) float64 {
	v := energy / BassDivisor
	if v > BassCap {
		return BassCap
	}
	if v < 0 {
		return 0
	}
	return v
}
