package metric

import (
	"github.com/mchmarny/linkscore/pkg/result"
)

// Report is the outcome of scoring a single result table.
type Report struct {
	Records   int            `json:"records" yaml:"records"`
	Positives int            `json:"positives" yaml:"positives"`
	Negatives int            `json:"negatives" yaml:"negatives"`
	AUROC     float64        `json:"auroc" yaml:"auroc"`
	AUPR      float64        `json:"aupr" yaml:"aupr"`
	NDCG      float64        `json:"ndcg" yaml:"ndcg"`
	ROCImage  string         `json:"roc_image" yaml:"roc_image"`
	PRImage   string         `json:"pr_image" yaml:"pr_image"`
	Summary   []ClassSummary `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// Evaluate computes AUROC, AUPR and NDCG in that order. Both plots are
// written before it returns.
func (r *Reporter) Evaluate(t *result.Table, prefix string) (*Report, error) {
	if t.Len() == 0 {
		return nil, ErrEmptyInput
	}

	var (
		rep = &Report{
			Records:  t.Len(),
			ROCImage: ROCImagePath(prefix),
			PRImage:  PRImagePath(prefix),
		}
		err error
	)

	if rep.AUROC, err = r.AUROC(t, prefix); err != nil {
		return nil, err
	}
	if rep.AUPR, err = r.AUPR(t, prefix); err != nil {
		return nil, err
	}
	if rep.NDCG, err = r.NDCG(t); err != nil {
		return nil, err
	}

	labels := t.Labels()
	_, pos, _ := binaryClasses(labels)
	for _, l := range labels {
		if l == pos {
			rep.Positives++
		} else {
			rep.Negatives++
		}
	}

	if rep.Summary, err = Summarize(labels, t.Confidences()); err != nil {
		return nil, err
	}

	return rep, nil
}

// Evaluate scores the table with default plot settings.
func Evaluate(t *result.Table, prefix string) (*Report, error) {
	return defaultReporter.Evaluate(t, prefix)
}
