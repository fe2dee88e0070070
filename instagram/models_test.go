package instagram

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaNumericIDUsesPrefix(t *testing.T) {
	media := Media{ID: "1038566691260753116_45552605"}
	id, err := media.NumericID()
	require.NoError(t, err)
	assert.Equal(t, int64(1038566691260753116), id)

	media = Media{ID: "not-a-number_45552605"}
	_, err = media.NumericID()
	assert.Error(t, err)
}

func TestMediaPostedAt(t *testing.T) {
	media := Media{CreatedTime: "1438560000"}
	postedAt, err := media.PostedAt()
	require.NoError(t, err)
	assert.Equal(t, time.Unix(1438560000, 0), postedAt)

	media = Media{CreatedTime: ""}
	_, err = media.PostedAt()
	assert.Error(t, err)
}

func TestLocationHasCoordinates(t *testing.T) {
	latitude, longitude := 33.45, -112.07
	var loc *Location
	assert.False(t, loc.HasCoordinates())
	assert.False(t, (&Location{Latitude: &latitude}).HasCoordinates())
	assert.True(t, (&Location{Latitude: &latitude, Longitude: &longitude}).HasCoordinates())
}
