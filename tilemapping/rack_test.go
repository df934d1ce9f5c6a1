package tilemapping

import (
	"errors"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
)

func TestRackFromString(t *testing.T) {
	is := is.New(t)
	ld := EnglishLetterDistribution()

	rack, err := RackFromString("cats?xx", ld)
	is.NoErr(err)
	is.Equal(rack.String(), "CATS_XX")
	is.Equal(rack.NumTiles(), 7)
	is.Equal(rack.NumBlanks(), 1)
	is.True(rack.IsBlank(4))
	is.True(!rack.IsBlank(0))
}

func TestRackErrors(t *testing.T) {
	ld := EnglishLetterDistribution()
	cases := []struct {
		rack string
		err  error
	}{
		{"ABCDEFGH", ErrRackTooLong},
		{"A___", ErrTooManyBlanks},
		{"AB?_?", ErrTooManyBlanks},
		{"AB1", ErrInvalidLetter},
	}
	for _, tc := range cases {
		_, err := RackFromString(tc.rack, ld)
		assert.True(t, errors.Is(err, tc.err), "rack %v: got %v", tc.rack, err)
	}
}

func TestEmptyRack(t *testing.T) {
	is := is.New(t)
	ld := EnglishLetterDistribution()
	rack, err := RackFromString("", ld)
	is.NoErr(err)
	is.True(rack.IsEmpty())

	var zero Rack
	is.True(zero.IsEmpty())
	is.Equal(zero.NumBlanks(), 0)
}

func TestRackWithout(t *testing.T) {
	is := is.New(t)
	ld := EnglishLetterDistribution()
	rack, err := RackFromString("AB?C", ld)
	is.NoErr(err)

	noB := rack.Without(1)
	is.Equal(noB.String(), "A_C")
	is.Equal(noB.NumBlanks(), 1)

	noBlank := rack.Without(2)
	is.Equal(noBlank.String(), "ABC")
	is.Equal(noBlank.NumBlanks(), 0)

	// the source rack is untouched by either branch
	is.Equal(rack.String(), "AB_C")
	is.Equal(rack.NumBlanks(), 1)

	// branches don't share storage
	a := rack.Without(0)
	b := rack.Without(3)
	is.Equal(a.String(), "B_C")
	is.Equal(b.String(), "AB_")
	last := a.Without(a.NumTiles() - 1).Without(0)
	is.Equal(last.String(), "_")
	is.Equal(last.Without(0).IsEmpty(), true)
	is.Equal(a.String(), "B_C")
}

func TestRackTilesIsCopy(t *testing.T) {
	ld := EnglishLetterDistribution()
	rack, _ := RackFromString("ABC", ld)
	tiles := rack.Tiles()
	tiles[0] = 'Z'
	assert.Equal(t, "ABC", rack.String())
}
