package stats

import (
	"strings"
	"sync"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
)

func TestSummary(t *testing.T) {
	is := is.New(t)
	s := NewSummary()
	for _, score := range []int{30, 10, 50, 20, 40} {
		s.Add(score)
	}
	s.AddNoMove()

	is.Equal(s.Turns(), 6)
	is.Equal(s.NoMoves(), 1)
	is.True(FuzzyEqual(s.Mean(), 30))
	is.True(FuzzyEqual(s.Stdev(), 15.811388300842))
	is.Equal(s.Median(), 30.0)
	is.Equal(s.Quantile(0.9), 50.0)
	is.Equal(s.Quantile(0), 10.0)
	is.True(s.ConfidenceInterval(95) > 0)
}

func TestSummaryEmpty(t *testing.T) {
	is := is.New(t)
	s := NewSummary()
	is.Equal(s.Turns(), 0)
	is.Equal(s.Mean(), 0.0)
	is.Equal(s.Median(), 0.0)
	is.Equal(s.ConfidenceInterval(95), 0.0)

	var sb strings.Builder
	is.NoErr(s.FprintHistogram(&sb))
	is.Equal(sb.String(), "no scores\n")
}

func TestSummaryHistogram(t *testing.T) {
	s := NewSummary()
	for i := 0; i < 100; i++ {
		s.Add(i % 40)
	}
	h := s.Histogram(10)
	assert.Equal(t, 100, h.Count)
	assert.Len(t, h.Buckets, 10)
	assert.Equal(t, 0.0, h.Min)
	assert.Equal(t, 39.0, h.Max)

	var sb strings.Builder
	assert.NoError(t, s.FprintHistogram(&sb))
	assert.NotEmpty(t, sb.String())
}

func TestSummaryConcurrent(t *testing.T) {
	s := NewSummary()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.Add(10)
			}
			s.AddNoMove()
		}()
	}
	wg.Wait()
	assert.Equal(t, 808, s.Turns())
	assert.Equal(t, 8, s.NoMoves())
	assert.InDelta(t, 10.0, s.Mean(), 1e-9)
}
