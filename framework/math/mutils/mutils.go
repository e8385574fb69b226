package mutils

import (
	"math"

	"golang.org/x/exp/constraints"
)

type Number interface {
	constraints.Integer | constraints.Float
}

func Clamp[T Number](x, min, max T) T {
	if x < min {
		return min
	}

	if x > max {
		return max
	}

	return x
}

func Lerp[T constraints.Float](min, max, t T) T {
	return min + (max-min)*t
}

func Abs[T Number](a T) T {
	if a < 0 {
		return -a
	}

	return a
}

// Logistic is a sigmoid going from 0 to maxValue, centered at offset/multiplier.
func Logistic(x, maxValue, multiplier, offset float64) float64 {
	return maxValue / (1 + math.Exp(offset-multiplier*x))
}
