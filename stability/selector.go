package stability

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/akitsu-lab/stabsel/core/parallel"
	"github.com/akitsu-lab/stabsel/dataset"
	"github.com/akitsu-lab/stabsel/pkg/errors"
	"github.com/akitsu-lab/stabsel/pkg/log"
)

// Direction classifies the sign of a feature's effect across the
// coefficient ensemble.
type Direction int

const (
	// DirectionNone marks features whose z-score is exactly zero or
	// undefined; they belong to neither signed group.
	DirectionNone Direction = iota
	// DirectionPositive marks z-score > 0.
	DirectionPositive
	// DirectionNegative marks z-score < 0.
	DirectionNegative
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionPositive:
		return "positive"
	case DirectionNegative:
		return "negative"
	default:
		return "none"
	}
}

// Record is the stability summary of one feature. Stability is the fraction
// of (lambda x replicate) cells with a non-zero coefficient; ZScore is
// mean/stddev over the same cells; Values is the full flattened cell
// collection, kept so downstream rendering can draw the per-feature
// distribution. Degenerate is set when the cells have zero variance and the
// z-score is therefore undefined.
type Record struct {
	Feature    string
	Index      int
	Stability  float64
	ZScore     float64
	Direction  Direction
	Values     []float64
	Degenerate bool
}

// Selection is the output of a stability analysis. All holds one record per
// feature in column order. Selected holds the features passing the
// stability threshold, ordered by non-increasing stability, excluding
// degenerate features; Positive and Negative partition Selected by strict
// z-score sign, so a zero z-score appears in neither.
type Selection struct {
	All      []Record
	Selected []Record
	Positive []Record
	Negative []Record
}

// Selector reduces a coefficient tensor into per-feature stability records.
type Selector struct {
	cfg config
}

// NewSelector validates the options and returns a Selector. The selection
// threshold defaults to 0.7 and is adjusted with WithMinStability.
func NewSelector(opts ...Option) (*Selector, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Selector{cfg: cfg}, nil
}

// Select computes stability and direction for every feature of the tensor.
// Feature names come from the matrix the tensor was built from; its column
// count must match the tensor's feature axis.
//
// A feature whose cells have zero variance has an undefined z-score. That
// is surfaced as a per-feature NumericalDegeneracy warning and the feature
// is excluded from Selected rather than propagating a non-finite score; an
// identically-zero feature reports stability 0 and never throws.
func (s *Selector) Select(tensor *CoefficientTensor, m *dataset.FeatureMatrix) (*Selection, error) {
	p, _, _ := tensor.Dims()
	if m.Cols() != p {
		return nil, errors.NewDimensionError("Selector.Select", p, m.Cols(), 1)
	}
	names := m.Names()

	// Features are independent reductions over disjoint tensor rows, so the
	// per-feature work is chunked across CPUs; each chunk writes only its
	// own index-addressed slots.
	sel := &Selection{All: make([]Record, p)}
	parallel.Parallelize(p, func(start, end int) {
		for j := start; j < end; j++ {
			cells := tensor.FeatureCells(j)

			nonZero := 0
			for _, v := range cells {
				if v != 0 {
					nonZero++
				}
			}
			stability := float64(nonZero) / float64(len(cells))

			mean, std := stat.MeanStdDev(cells, nil)
			rec := Record{
				Feature:   names[j],
				Index:     j,
				Stability: stability,
				Values:    cells,
			}
			if std == 0 || math.IsNaN(std) {
				rec.Degenerate = true
				rec.ZScore = math.NaN()
				errors.Warn(errors.NewNumericalDegeneracyError(names[j], "direction z-score"))
			} else {
				rec.ZScore = mean / std
				switch {
				case rec.ZScore > 0:
					rec.Direction = DirectionPositive
				case rec.ZScore < 0:
					rec.Direction = DirectionNegative
				default:
					s.cfg.logger.Debug("zero z-score feature excluded from both direction groups",
						log.ComponentKey, "stability",
						"feature", names[j])
				}
			}
			sel.All[j] = rec
		}
	})

	for _, rec := range sel.All {
		if rec.Degenerate || rec.Stability < s.cfg.minStability {
			continue
		}
		sel.Selected = append(sel.Selected, rec)
	}
	sort.SliceStable(sel.Selected, func(a, b int) bool {
		return sel.Selected[a].Stability > sel.Selected[b].Stability
	})

	for _, rec := range sel.Selected {
		switch rec.Direction {
		case DirectionPositive:
			sel.Positive = append(sel.Positive, rec)
		case DirectionNegative:
			sel.Negative = append(sel.Negative, rec)
		}
	}

	s.cfg.logger.Info("stability selection complete",
		log.ComponentKey, "stability",
		log.OperationKey, "select",
		log.FeaturesKey, p,
		"selected", len(sel.Selected))

	return sel, nil
}
