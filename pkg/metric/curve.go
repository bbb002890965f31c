package metric

import (
	"math"
	"slices"
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrEmptyInput is returned when there are no records to score.
	ErrEmptyInput = errors.New("no records to score")
	// ErrComputation is returned when a metric is undefined for the input.
	ErrComputation = errors.New("metric computation error")
)

// Classes returns the distinct labels in ascending order.
func Classes(labels []int) []int {
	seen := make(map[int]struct{}, 2)
	list := make([]int, 0, 2)
	for _, l := range labels {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		list = append(list, l)
	}
	slices.Sort(list)
	return list
}

// binaryClasses returns the negative and positive label. The larger
// label is the positive class.
func binaryClasses(labels []int) (neg, pos int, err error) {
	c := Classes(labels)
	switch {
	case len(c) < 2:
		return 0, 0, errors.Wrapf(ErrComputation, "only one class present in labels: %v", c)
	case len(c) > 2:
		return 0, 0, errors.Wrapf(ErrComputation, "expected binary labels, got %d classes: %v", len(c), c)
	}
	return c[0], c[1], nil
}

func validate(labels []int, scores []float64) error {
	if len(labels) == 0 {
		return ErrEmptyInput
	}
	if len(labels) != len(scores) {
		return errors.Wrapf(ErrComputation, "label and score length mismatch: %d != %d", len(labels), len(scores))
	}
	if floats.HasNaN(scores) {
		return errors.Wrap(ErrComputation, "scores contain NaN")
	}
	return nil
}

// sortedByScore returns the scores in ascending order together with the
// positive-class flag of each sorted position.
func sortedByScore(labels []int, scores []float64, pos int) ([]float64, []bool) {
	y := make([]float64, len(scores))
	copy(y, scores)
	inds := make([]int, len(y))
	floats.Argsort(y, inds)

	classes := make([]bool, len(y))
	for i, j := range inds {
		classes[i] = labels[j] == pos
	}
	return y, classes
}

// ROCCurve returns the false and true positive rates for every distinct
// score threshold, starting at (0, 0) for the +Inf threshold.
func ROCCurve(labels []int, scores []float64) (fpr, tpr, thresh []float64, err error) {
	if err := validate(labels, scores); err != nil {
		return nil, nil, nil, err
	}
	_, pos, err := binaryClasses(labels)
	if err != nil {
		return nil, nil, nil, err
	}

	y, classes := sortedByScore(labels, scores, pos)
	tpr, fpr, thresh = stat.ROC(nil, y, classes, nil)
	return fpr, tpr, thresh, nil
}

// PRCurve returns recall and precision for every distinct score threshold
// in order of increasing recall. The curve starts at recall 0, precision 1.
func PRCurve(labels []int, scores []float64) (recall, precision, thresh []float64, err error) {
	if err := validate(labels, scores); err != nil {
		return nil, nil, nil, err
	}
	_, pos, err := binaryClasses(labels)
	if err != nil {
		return nil, nil, nil, err
	}

	y, classes := sortedByScore(labels, scores, pos)

	var nPos float64
	for _, c := range classes {
		if c {
			nPos++
		}
	}

	recall = []float64{0}
	precision = []float64{1}
	thresh = []float64{math.Inf(1)}

	var tp, fp float64
	for i := len(y) - 1; i >= 0; {
		cut := y[i]
		for ; i >= 0 && y[i] == cut; i-- {
			if classes[i] {
				tp++
			} else {
				fp++
			}
		}
		recall = append(recall, tp/nPos)
		precision = append(precision, tp/(tp+fp))
		thresh = append(thresh, cut)
	}

	return recall, precision, thresh, nil
}

// Area integrates y over x with the trapezoidal rule. x must be sorted
// in increasing order.
func Area(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, errors.Wrapf(ErrComputation, "curve length mismatch: %d != %d", len(x), len(y))
	}
	if len(x) < 2 {
		return 0, errors.Wrapf(ErrComputation, "at least 2 points needed to compute area, got %d", len(x))
	}
	if !sort.Float64sAreSorted(x) {
		return 0, errors.Wrap(ErrComputation, "curve x values are not monotonic")
	}
	return integrate.Trapezoidal(x, y), nil
}
