// Package metric scores result tables: AUROC, AUPR and NDCG of the
// predicted confidences against the ground truth labels.
package metric

import (
	"log/slog"

	"github.com/mchmarny/linkscore/pkg/chart"
	"github.com/mchmarny/linkscore/pkg/result"
	"github.com/pkg/errors"
)

const (
	rocSuffix = "_roc.png"
	prSuffix  = "_pr.png"
)

// ROCImagePath returns the ROC plot path for the output prefix.
func ROCImagePath(prefix string) string {
	return prefix + rocSuffix
}

// PRImagePath returns the precision-recall plot path for the output prefix.
func PRImagePath(prefix string) string {
	return prefix + prSuffix
}

// Reporter computes metrics and renders the curve plots.
type Reporter struct {
	Size chart.Size
}

// NewReporter returns a reporter rendering plots of the given size.
func NewReporter(size chart.Size) *Reporter {
	return &Reporter{Size: size}
}

var defaultReporter = NewReporter(chart.DefaultSize)

// AUROC returns the area under the ROC curve and plots the curve to <prefix>_roc.png.
func AUROC(t *result.Table, prefix string) (float64, error) {
	return defaultReporter.AUROC(t, prefix)
}

// AUPR returns the area under the precision-recall curve and plots the
// curve to <prefix>_pr.png.
func AUPR(t *result.Table, prefix string) (float64, error) {
	return defaultReporter.AUPR(t, prefix)
}

// NDCG returns the normalized discounted cumulative gain of the table.
func NDCG(t *result.Table) (float64, error) {
	return defaultReporter.NDCG(t)
}

// AUROC plots the ROC curve to ROCImagePath(prefix) and returns the area under it.
func (r *Reporter) AUROC(t *result.Table, prefix string) (float64, error) {
	if t.Len() == 0 {
		return 0, ErrEmptyInput
	}

	fpr, tpr, _, err := ROCCurve(t.Labels(), t.Confidences())
	if err != nil {
		return 0, errors.Wrap(err, "error computing ROC curve")
	}

	path := ROCImagePath(prefix)
	c := chart.Curve{
		Title:  "ROC",
		XLabel: "False positive rate",
		YLabel: "True positive rate",
		X:      fpr,
		Y:      tpr,
	}
	if err := chart.Save(path, c, r.Size); err != nil {
		return 0, err
	}

	area, err := Area(fpr, tpr)
	if err != nil {
		return 0, err
	}

	slog.Debug("auroc", "value", area, "points", len(fpr), "image", path)
	return area, nil
}

// AUPR plots the precision-recall curve to PRImagePath(prefix) and returns
// its trapezoidal area over recall.
func (r *Reporter) AUPR(t *result.Table, prefix string) (float64, error) {
	if t.Len() == 0 {
		return 0, ErrEmptyInput
	}

	recall, precision, _, err := PRCurve(t.Labels(), t.Confidences())
	if err != nil {
		return 0, errors.Wrap(err, "error computing precision-recall curve")
	}

	path := PRImagePath(prefix)
	c := chart.Curve{
		Title:  "Precision-Recall",
		XLabel: "Recall",
		YLabel: "Precision",
		X:      recall,
		Y:      precision,
	}
	if err := chart.Save(path, c, r.Size); err != nil {
		return 0, err
	}

	area, err := Area(recall, precision)
	if err != nil {
		return 0, err
	}

	slog.Debug("aupr", "value", area, "points", len(recall), "image", path)
	return area, nil
}

// NDCG returns the mean normalized discounted cumulative gain over the
// one-hot encoded labels. No image is written.
func (r *Reporter) NDCG(t *result.Table) (float64, error) {
	if t.Len() == 0 {
		return 0, ErrEmptyInput
	}

	v, err := ndcg(t.Labels(), t.Confidences())
	if err != nil {
		return 0, errors.Wrap(err, "error computing NDCG")
	}

	slog.Debug("ndcg", "value", v)
	return v, nil
}
