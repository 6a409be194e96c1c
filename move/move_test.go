package move

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromUserPosition(t *testing.T) {
	type postest struct {
		pos    int
		m      Move
		hasErr bool
	}
	testCases := []postest{
		{1, 0, false},
		{5, 4, false},
		{9, 8, false},
		{0, None, true},
		{10, None, true},
		{-3, None, true},
	}
	for _, tc := range testCases {
		m, err := FromUserPosition(tc.pos)
		assert.Equal(t, tc.m, m)
		if tc.hasErr {
			assert.ErrorIs(t, err, ErrOutOfRange)
		} else {
			assert.NoError(t, err)
		}
	}
}

func TestRowCol(t *testing.T) {
	assert.Equal(t, 0, Move(2).Row())
	assert.Equal(t, 2, Move(2).Col())
	assert.Equal(t, 1, Move(4).Row())
	assert.Equal(t, 1, Move(4).Col())
	assert.Equal(t, 2, Move(6).Row())
	assert.Equal(t, 0, Move(6).Col())
}

func TestValid(t *testing.T) {
	for m := Move(0); m < NumCells; m++ {
		assert.True(t, m.Valid())
	}
	assert.False(t, None.Valid())
	assert.False(t, Move(9).Valid())
}
