package metric

import (
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
)

// ClassSummary describes the confidence distribution of one label class.
type ClassSummary struct {
	Label  int     `json:"label" yaml:"label"`
	Count  int     `json:"count" yaml:"count"`
	Mean   float64 `json:"mean" yaml:"mean"`
	Median float64 `json:"median" yaml:"median"`
	StdDev float64 `json:"stddev" yaml:"stddev"`
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
}

// Summarize groups scores by label and describes each group, ordered by label.
func Summarize(labels []int, scores []float64) ([]ClassSummary, error) {
	if err := validate(labels, scores); err != nil {
		return nil, err
	}

	groups := make(map[int]stats.Float64Data)
	for i, l := range labels {
		groups[l] = append(groups[l], scores[i])
	}

	list := make([]ClassSummary, 0, len(groups))
	for _, l := range Classes(labels) {
		data := groups[l]
		s := ClassSummary{Label: l, Count: data.Len()}

		var err error
		if s.Mean, err = data.Mean(); err != nil {
			return nil, errors.Wrapf(err, "error computing mean for class %d", l)
		}
		if s.Median, err = data.Median(); err != nil {
			return nil, errors.Wrapf(err, "error computing median for class %d", l)
		}
		if s.StdDev, err = data.StandardDeviation(); err != nil {
			return nil, errors.Wrapf(err, "error computing stddev for class %d", l)
		}
		if s.Min, err = data.Min(); err != nil {
			return nil, errors.Wrapf(err, "error computing min for class %d", l)
		}
		if s.Max, err = data.Max(); err != nil {
			return nil, errors.Wrapf(err, "error computing max for class %d", l)
		}
		list = append(list, s)
	}

	return list, nil
}
