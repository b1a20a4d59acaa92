package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in   string
		want Strategy
	}{
		{"first", FirstFit},
		{"first_fit", FirstFit},
		{"First-Fit", FirstFit},
		{"bestfit", BestFit},
		{" worst ", WorstFit},
		{"NEXT_FIT", NextFit},
	}
	for _, tt := range tests {
		got, err := ParseStrategy(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "fit", "buddy", "first fit"} {
		_, err := ParseStrategy(bad)
		assert.Error(t, err, bad)
	}
}

func TestStrategy_Text(t *testing.T) {
	for _, s := range Strategies() {
		b, err := s.MarshalText()
		require.NoError(t, err)

		var back Strategy
		require.NoError(t, back.UnmarshalText(b))
		assert.Equal(t, s, back)
	}

	assert.Equal(t, "next_fit", NextFit.String())
	assert.Equal(t, "Strategy(7)", Strategy(7).String())
	_, err := Strategy(7).MarshalText()
	assert.Error(t, err)
}

func TestStats_Live(t *testing.T) {
	a := newTestAllocator(t, FirstFit, 0)
	p := mustMalloc(t, a, 8)
	mustMalloc(t, a, 8)
	a.Free(p)
	assert.Equal(t, 1, a.Stats().Live())
}
