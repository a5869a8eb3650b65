package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocalDateTime(t *testing.T) {
	loc, err := ResolveLocation("", "Asia/Ho_Chi_Minh")
	require.NoError(t, err)

	got, err := ParseLocalDateTime("2030-06-01T09:30", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2030, 6, 1, 2, 30, 0, 0, time.UTC), got)
	assert.Equal(t, time.UTC, got.Location())

	_, err = ParseLocalDateTime("01/06/2030 09:30", loc)
	assert.Error(t, err)
}

func TestResolveLocation(t *testing.T) {
	loc, err := ResolveLocation("Europe/Berlin", "Asia/Ho_Chi_Minh")
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", loc.String())

	loc, err = ResolveLocation("", "")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	_, err = ResolveLocation("Mars/Olympus", "")
	assert.ErrorIs(t, err, ErrUnknownTimezone)
}
