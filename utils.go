package schedsim

import "golang.org/x/exp/constraints"

type Number interface {
	constraints.Integer | constraints.Float
}

func minOf[T Number](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func maxOf[T Number](a, b T) T {
	if a > b {
		return a
	}
	return b
}

func avg[T Number](list []T) float64 {
	if len(list) == 0 {
		return 0
	}

	var sum T
	sum = 0
	for _, val := range list {
		sum += val
	}
	return float64(sum) / float64(len(list))
}
