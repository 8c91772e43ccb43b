package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carvaluator/internal/models"
)

func TestAlignStrictAlternation(t *testing.T) {
	mixed := []string{"Calgary, AB", "80K km", "Edmonton, AB", "120K miles", "Red Deer, AB", "15K km"}

	locations, tokens := AlignSplit(mixed)

	require.Len(t, locations, 3)
	require.Len(t, tokens, 3)
	assert.Equal(t, []string{"Calgary, AB", "Edmonton, AB", "Red Deer, AB"}, locations)
	assert.Equal(t, []string{"80K km", "120K miles", "15K km"}, tokens)
	assert.NotContains(t, tokens, models.SentinelMileage)
}

func TestAlignInsertsSentinelWithoutShifting(t *testing.T) {
	mixed := []string{"Calgary, AB", "Edmonton, AB", "50K km", "Red Deer, AB", "70K km"}

	pairs := Align(mixed)

	require.Len(t, pairs, 3)
	assert.Equal(t, models.AlignedPair{Location: "Calgary, AB", MileageToken: models.SentinelMileage}, pairs[0])
	assert.Equal(t, models.AlignedPair{Location: "Edmonton, AB", MileageToken: "50K km"}, pairs[1])
	assert.Equal(t, models.AlignedPair{Location: "Red Deer, AB", MileageToken: "70K km"}, pairs[2])
}

func TestAlignTrailingLocation(t *testing.T) {
	pairs := Align([]string{"Calgary, AB", "80K km", "Airdrie, AB"})

	require.Len(t, pairs, 2)
	assert.True(t, pairs[1].IsSentinel())
}

func TestAlignSkipsNoiseAndUnknownFragments(t *testing.T) {
	mixed := []string{
		"Log In",
		"Calgary, AB",
		"80K km",
		"Create new account",
		"Listed 2 days ago",
		"Saint-Albert, AB",
		"200K km",
		"Forgot password?",
	}

	pairs := Align(mixed)

	require.Len(t, pairs, 2)
	assert.Equal(t, "Calgary, AB", pairs[0].Location)
	assert.Equal(t, "80K km", pairs[0].MileageToken)
	assert.Equal(t, "Saint-Albert, AB", pairs[1].Location)
	assert.Equal(t, "200K km", pairs[1].MileageToken)
}

func TestAlignNoiseBetweenLocationAndMileage(t *testing.T) {
	// the mileage is not directly after the location, so the location gets the sentinel and the
	// orphaned mileage is dropped
	pairs := Align([]string{"Calgary, AB", "Log in", "80K km", "Edmonton, AB", "10K km"})

	require.Len(t, pairs, 2)
	assert.True(t, pairs[0].IsSentinel())
	assert.Equal(t, "10K km", pairs[1].MileageToken)
}

func TestAlignEmptyStream(t *testing.T) {
	assert.Empty(t, Align(nil))
	locations, tokens := AlignSplit([]string{"Log in", "Create new account"})
	assert.Empty(t, locations)
	assert.Empty(t, tokens)
}

func TestFragmentClassifiers(t *testing.T) {
	assert.True(t, IsLocation("Calgary, AB"))
	assert.True(t, IsLocation("Fort McMurray, AB"))
	assert.True(t, IsLocation("St. John's, NL"))
	assert.False(t, IsLocation("Calgary, Alberta"))
	assert.False(t, IsLocation("Calgary,AB"))
	assert.False(t, IsLocation("80K km"))

	assert.True(t, IsMileage("80K km"))
	assert.True(t, IsMileage("120K miles"))
	assert.False(t, IsMileage("80,000 km"))
	assert.False(t, IsMileage("80K kms"))

	assert.True(t, IsNoise("Create new account"))
	assert.False(t, IsNoise("create new account"))
	assert.True(t, IsNoise("Marketplace"))
}
