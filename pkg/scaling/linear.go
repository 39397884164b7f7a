// Package scaling maps raw fitness values onto a fixed band so that no single
// outlier dominates fitness-proportional selection.
package scaling

const (
	// Low and High bound the scaled band.
	Low  = 100
	High = 200
	// Flat is assigned to every individual of a population without variance.
	Flat = 1
)

// Linear maps raw onto [Low, High]. The minimum raw value maps to Low and the
// maximum to High; values in between are truncated towards zero. If all raw
// values are equal every scaled value is Flat.
func Linear(raw []int) []int {
	out := make([]int, len(raw))
	if len(raw) == 0 {
		return out
	}

	zMin, zMax := raw[0], raw[0]
	for _, z := range raw[1:] {
		if z < zMin {
			zMin = z
		}
		if z > zMax {
			zMax = z
		}
	}

	if zMin == zMax {
		for i := range out {
			out[i] = Flat
		}
		return out
	}

	span := zMax - zMin
	for i, z := range raw {
		out[i] = Low + (z-zMin)*(High-Low)/span
	}
	return out
}
