package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCoordinates(t *testing.T) {
	latitude, longitude, err := parseCoordinates("33.45, -112.07")
	require.NoError(t, err)
	assert.Equal(t, 33.45, latitude)
	assert.Equal(t, -112.07, longitude)

	for _, raw := range []string{"", "33.45", "a,b", "1,2,3"} {
		_, _, err := parseCoordinates(raw)
		assert.Error(t, err, "raw %q", raw)
	}
}
