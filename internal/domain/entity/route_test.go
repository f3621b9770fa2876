package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteValidate_RejectsEmptyWagonClasses(t *testing.T) {
	route := &Route{
		StationFromID: 2218000,
		StationToID:   2218095,
		Dates:         []string{"2026-01-04"},
		WagonClasses:  []string{},
	}

	err := route.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyWagonClasses)
}

func TestRouteValidate_AcceptsNonEmptyWagonClasses(t *testing.T) {
	route := &Route{
		StationFromID: 2218000,
		StationToID:   2218095,
		Dates:         []string{"2026-01-04"},
		WagonClasses:  []string{"Л", "К"},
	}

	assert.NoError(t, route.Validate())
}
