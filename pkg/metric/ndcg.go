package metric

import (
	"math"
	"sort"

	"github.com/pkg/errors"
)

// oneHot encodes label over the sorted classes.
func oneHot(label int, classes []int) []float64 {
	v := make([]float64, len(classes))
	for i, c := range classes {
		if c == label {
			v[i] = 1
		}
	}
	return v
}

func discount(rank int) float64 {
	return 1 / math.Log2(float64(rank)+2)
}

// dcg ranks the gains by descending prediction. Tied predictions share
// the mean gain of their group.
func dcg(gain, pred []float64) float64 {
	order := make([]int, len(pred))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return pred[order[i]] > pred[order[j]]
	})

	var score float64
	for start := 0; start < len(order); {
		end := start
		var g, d float64
		for end < len(order) && pred[order[end]] == pred[order[start]] {
			g += gain[order[end]]
			d += discount(end)
			end++
		}
		score += g / float64(end-start) * d
		start = end
	}
	return score
}

func idealDCG(gain []float64) float64 {
	sorted := make([]float64, len(gain))
	copy(sorted, gain)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	var score float64
	for i, g := range sorted {
		score += g * discount(i)
	}
	return score
}

// ndcg compares the one-hot encoded labels with the [1-c, c] relevance
// rows and averages the per-record gain. Only two classes are supported.
func ndcg(labels []int, scores []float64) (float64, error) {
	if err := validate(labels, scores); err != nil {
		return 0, err
	}

	classes := Classes(labels)
	if len(classes) != 2 {
		return 0, errors.Wrapf(ErrComputation,
			"relevance has 2 columns but labels encode to %d: %v", len(classes), classes)
	}

	var sum float64
	for i, l := range labels {
		gain := oneHot(l, classes)
		pred := []float64{1 - scores[i], scores[i]}

		ideal := idealDCG(gain)
		if ideal == 0 {
			continue
		}
		sum += dcg(gain, pred) / ideal
	}

	return sum / float64(len(labels)), nil
}
