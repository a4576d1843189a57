package analysis

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/KirkDiggler/dna-planner/internal/entities"
	"github.com/KirkDiggler/dna-planner/internal/errors"
)

// Trend is a straight-line fit of a creature's outstanding deficit
type Trend struct {
	Name string

	// PerDay is the fitted change per day; negative means the deficit shrinks
	PerDay float64

	// RSquared is the goodness of fit in [0, 1]
	RSquared float64

	Latest   int
	LatestAt time.Time

	// DaysToZero is the projected days from LatestAt until the deficit is
	// gone. It is NaN when the deficit is not shrinking.
	DaysToZero float64
}

// Done reports whether the deficit is already cleared
func (t *Trend) Done() bool {
	return t.Latest <= 0
}

// Shrinking reports whether a zero crossing can be projected
func (t *Trend) Shrinking() bool {
	return !math.IsNaN(t.DaysToZero)
}

// ProjectTrend fits points by least squares over days since the first point.
// At least two points on different days are required.
func ProjectTrend(name string, points []entities.Point) (*Trend, error) {
	if len(points) < 2 {
		return nil, errors.FailedPreconditionf("%s has %d history points, need at least 2", name, len(points))
	}

	origin := points[0].At
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.At.Sub(origin).Hours() / 24
		ys[i] = float64(p.Amount)
	}
	if xs[len(xs)-1] == xs[0] {
		return nil, errors.FailedPreconditionf("%s history covers a single day", name)
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)

	last := points[len(points)-1]
	trend := &Trend{
		Name:       name,
		PerDay:     beta,
		RSquared:   stat.RSquared(xs, ys, nil, alpha, beta),
		Latest:     last.Amount,
		LatestAt:   last.At,
		DaysToZero: math.NaN(),
	}

	switch {
	case last.Amount <= 0:
		trend.DaysToZero = 0
	case beta < 0:
		trend.DaysToZero = float64(last.Amount) / -beta
	}
	return trend, nil
}
