package bootstrap

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Poisson draws one Poisson(mean) variate from src. A mean that is not a
// positive finite number yields 0.
func Poisson(src rand.Source, mean float64) int64 {
	if !(mean > 0) || math.IsInf(mean, 0) {
		return 0
	}

	return int64(distuv.Poisson{Lambda: mean, Src: src}.Rand())
}
