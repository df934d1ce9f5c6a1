package stats

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/aybabtme/uniplot/histogram"
	"gonum.org/v1/gonum/stat"
)

// HistogramBins is the number of score buckets Fprint draws.
const HistogramBins = 15

// Summary collects the scores of many opening turns. It is safe for
// concurrent use.
type Summary struct {
	sync.Mutex
	running Statistic
	scores  []float64
	noMoves int
}

func NewSummary() *Summary {
	return &Summary{}
}

// Add records the score of a turn that found a move.
func (s *Summary) Add(score int) {
	s.Lock()
	defer s.Unlock()
	s.running.Push(float64(score))
	s.scores = append(s.scores, float64(score))
}

// AddNoMove records a turn for which no move was found.
func (s *Summary) AddNoMove() {
	s.Lock()
	defer s.Unlock()
	s.noMoves++
}

// Turns is the number of turns recorded, with or without a move.
func (s *Summary) Turns() int {
	s.Lock()
	defer s.Unlock()
	return len(s.scores) + s.noMoves
}

// NoMoves is the number of turns without a move.
func (s *Summary) NoMoves() int {
	s.Lock()
	defer s.Unlock()
	return s.noMoves
}

// Mean is the mean score of the turns that found a move.
func (s *Summary) Mean() float64 {
	s.Lock()
	defer s.Unlock()
	return s.running.Mean()
}

func (s *Summary) Stdev() float64 {
	s.Lock()
	defer s.Unlock()
	return s.running.Stdev()
}

// ConfidenceInterval returns the half-width of the pct% confidence interval
// around the mean.
func (s *Summary) ConfidenceInterval(pct float64) float64 {
	s.Lock()
	defer s.Unlock()
	if s.running.Iterations() == 0 {
		return 0
	}
	return ZVal(pct) * s.running.StandardError()
}

// Quantile returns the empirical p-quantile (0 <= p <= 1) of the scores, or
// 0 if there are none.
func (s *Summary) Quantile(p float64) float64 {
	s.Lock()
	sorted := append([]float64(nil), s.scores...)
	s.Unlock()
	if len(sorted) == 0 {
		return 0
	}
	sort.Float64s(sorted)
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

func (s *Summary) Median() float64 {
	return s.Quantile(0.5)
}

// Histogram buckets the scores.
func (s *Summary) Histogram(bins int) histogram.Histogram {
	s.Lock()
	defer s.Unlock()
	return histogram.Hist(bins, s.scores)
}

// FprintHistogram draws the score histogram to w.
func (s *Summary) FprintHistogram(w io.Writer) error {
	if s.Turns() == s.NoMoves() {
		_, err := io.WriteString(w, "no scores\n")
		return err
	}
	return histogram.Fprint(w, s.Histogram(HistogramBins), histogram.Linear(40))
}

func (s *Summary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Turns: %d\n", s.Turns())
	fmt.Fprintf(&sb, "No move found: %d\n", s.NoMoves())
	fmt.Fprintf(&sb, "Mean score: %.3f ± %.3f (95%%)\n", s.Mean(), s.ConfidenceInterval(95))
	fmt.Fprintf(&sb, "Stdev: %.3f\n", s.Stdev())
	fmt.Fprintf(&sb, "Median: %.0f\n", s.Median())
	fmt.Fprintf(&sb, "90th percentile: %.0f\n", s.Quantile(0.9))
	return sb.String()
}
