package dataset

import (
	"github.com/akitsu-lab/stabsel/pkg/errors"
)

// CompleteCaseIndices returns the row indices, restricted to rows (or all
// rows when rows is nil), whose feature values and response are all
// observed, together with the number of rows dropped. Row filtering is
// applied identically to matrix and response; the drop count is an
// informational diagnostic, not an error.
func CompleteCaseIndices(m *FeatureMatrix, r Response, rows []int) ([]int, int, error) {
	if m.Rows() != len(r) {
		return nil, 0, errors.NewDimensionError("CompleteCaseIndices", m.Rows(), len(r), 0)
	}
	if rows == nil {
		rows = make([]int, m.Rows())
		for i := range rows {
			rows[i] = i
		}
	}
	kept := make([]int, 0, len(rows))
	for _, i := range rows {
		if m.RowHasMissing(i) || r.HasMissing(i) {
			continue
		}
		kept = append(kept, i)
	}
	return kept, len(rows) - len(kept), nil
}
