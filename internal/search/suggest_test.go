package search

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var titles = []string{
	"Inception",
	"The Dark Knight",
	"Interstellar",
	"The Matrix",
	"Parasite",
	"Avengers: Endgame",
	"La La Land",
	"Joker",
}

func TestSuggestFindsCloseTitles(t *testing.T) {
	got := Suggest("incepton", titles, DefaultLimit)

	require.NotEmpty(t, got)
	require.Equal(t, "Inception", got[0])
}

func TestSuggestIgnoresCase(t *testing.T) {
	got := Suggest("joker", titles, DefaultLimit)

	require.Contains(t, got, "Joker")
}

func TestSuggestHonorsLimit(t *testing.T) {
	got := Suggest("the", titles, 1)

	require.Len(t, got, 1)
}

func TestSuggestEmptyTermYieldsNothing(t *testing.T) {
	require.Nil(t, Suggest("", titles, DefaultLimit))
	require.Nil(t, Suggest("   ", titles, DefaultLimit))
}

func TestSuggestNothingCloseYieldsNothing(t *testing.T) {
	require.Empty(t, Suggest("zzzzqqqq", titles, DefaultLimit))
}

func TestSuggestZeroLimit(t *testing.T) {
	require.Nil(t, Suggest("joker", titles, 0))
}
