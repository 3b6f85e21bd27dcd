package metrics

import (
	"sort"

	"github.com/akitsu-lab/stabsel/pkg/errors"
)

// ROCPoint is one (false positive rate, true positive rate) pair on a
// receiver operating characteristic curve.
type ROCPoint struct {
	FPR float64
	TPR float64
}

// ROCCurve computes the ROC curve for binary labels yTrue (values 0 or 1)
// against continuous scores, sweeping the decision threshold from high to
// low. Tied scores are grouped so the curve is exact. The curve always
// starts at (0,0) and ends at (1,1).
//
// If yTrue contains only one class the curve is undefined; the degenerate
// diagonal {(0,0),(1,1)} is returned.
func ROCCurve(yTrue, score []float64) ([]ROCPoint, error) {
	n := len(yTrue)
	if n == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "ROCCurve")
	}
	if len(score) != n {
		return nil, errors.NewDimensionError("ROCCurve", n, len(score), 0)
	}

	var pos, neg int
	for _, y := range yTrue {
		if y == 1 {
			pos++
		} else {
			neg++
		}
	}
	if pos == 0 || neg == 0 {
		return []ROCPoint{{0, 0}, {1, 1}}, nil
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return score[order[a]] > score[order[b]]
	})

	curve := []ROCPoint{{0, 0}}
	tp, fp := 0, 0
	for i := 0; i < n; {
		// Consume the whole tie group before emitting a point.
		j := i
		for j < n && score[order[j]] == score[order[i]] {
			if yTrue[order[j]] == 1 {
				tp++
			} else {
				fp++
			}
			j++
		}
		i = j
		curve = append(curve, ROCPoint{
			FPR: float64(fp) / float64(neg),
			TPR: float64(tp) / float64(pos),
		})
	}
	return curve, nil
}

// AUC computes the area under the ROC curve by trapezoidal integration.
// For single-class inputs the metric is undefined and 0.5 is returned.
func AUC(yTrue, score []float64) (float64, error) {
	curve, err := ROCCurve(yTrue, score)
	if err != nil {
		return 0, err
	}
	return AUCFromCurve(curve), nil
}

// AUCFromCurve integrates an already-computed ROC curve.
func AUCFromCurve(curve []ROCPoint) float64 {
	var area float64
	for i := 1; i < len(curve); i++ {
		dx := curve[i].FPR - curve[i-1].FPR
		area += dx * (curve[i].TPR + curve[i-1].TPR) / 2
	}
	return area
}
