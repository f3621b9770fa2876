package usecase

import (
	"testing"

	"github.com/dvoretskiyy/UKZTrainMonitor/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func directTrip(number string, classes ...entity.WagonClass) entity.Trip {
	return entity.Trip{
		Train: entity.Train{
			Number:       number,
			WagonClasses: classes,
		},
		DepartAt:    1767513720,
		ArriveAt:    1767527100,
		StationFrom: entity.Station{ID: 2218000, Name: "Шепетівка"},
		StationTo:   entity.Station{ID: 2218095, Name: "Полонне"},
	}
}

func TestMatchAvailability_NoQualifyingOffers(t *testing.T) {
	trips := map[string]*entity.TripSet{
		"2026-01-04": {Direct: []entity.Trip{
			directTrip("743К",
				entity.WagonClass{ID: "П", Name: "Плацкарт", FreeSeats: 5, Price: 22000},
				entity.WagonClass{ID: "К", Name: "Купе", FreeSeats: 0, Price: 52000},
			),
		}},
	}

	result := MatchAvailability([]string{"2026-01-04"}, trips, []string{"Л", "К"})

	assert.False(t, result.HasTickets)
	assert.Empty(t, result.DatesWithTickets)
	assert.Empty(t, result.Details)
}

func TestMatchAvailability_MatchingOfferRecorded(t *testing.T) {
	trips := map[string]*entity.TripSet{
		"2026-01-04": {Direct: []entity.Trip{
			directTrip("743К",
				entity.WagonClass{ID: "П", Name: "Плацкарт", FreeSeats: 5, Price: 22000},
				entity.WagonClass{ID: "К", Name: "Купе", FreeSeats: 3, Price: 52000},
			),
		}},
	}

	result := MatchAvailability([]string{"2026-01-04"}, trips, []string{"Л", "К"})

	assert.True(t, result.HasTickets)
	assert.Equal(t, []string{"2026-01-04"}, result.DatesWithTickets)

	offers := result.Details["2026-01-04"]
	require.Len(t, offers, 1)
	assert.Equal(t, "743К", offers[0].TrainNumber)
	assert.Equal(t, "К", offers[0].WagonType)
	assert.Equal(t, "Купе", offers[0].WagonName)
	assert.Equal(t, 3, offers[0].FreeSeats)
	assert.Equal(t, int64(52000), offers[0].Price)
	assert.Equal(t, int64(2218000), offers[0].StationFrom.ID)
	assert.Equal(t, int64(2218095), offers[0].StationTo.ID)
}

func TestMatchAvailability_DateDedupKeepsAllOffers(t *testing.T) {
	trips := map[string]*entity.TripSet{
		"2026-01-05": {Direct: []entity.Trip{
			directTrip("1", entity.WagonClass{ID: "К", Name: "Купе", FreeSeats: 2, Price: 50000}),
			directTrip("2", entity.WagonClass{ID: "Л", Name: "Люкс", FreeSeats: 1, Price: 90000}),
			directTrip("3", entity.WagonClass{ID: "С1", Name: "Сидячий 1 клас", FreeSeats: 9, Price: 30000}),
		}},
	}

	result := MatchAvailability([]string{"2026-01-05"}, trips, []string{"Л", "К"})

	// One matched date, every qualifying offer retained
	assert.Equal(t, []string{"2026-01-05"}, result.DatesWithTickets)
	assert.Len(t, result.Details["2026-01-05"], 2)
}

func TestMatchAvailability_DatesKeepScanOrder(t *testing.T) {
	seats := func(date string) *entity.TripSet {
		return &entity.TripSet{Direct: []entity.Trip{
			directTrip("100", entity.WagonClass{ID: "П", Name: "Плацкарт", FreeSeats: 4, Price: 20000}),
		}}
	}
	trips := map[string]*entity.TripSet{
		"2026-02-10": seats("2026-02-10"),
		"2026-01-20": seats("2026-01-20"),
		"2026-01-04": seats("2026-01-04"),
	}

	// Caller order, not sorted order
	dates := []string{"2026-02-10", "2026-01-04", "2026-01-20"}
	result := MatchAvailability(dates, trips, []string{"П"})

	assert.Equal(t, dates, result.DatesWithTickets)
}

func TestMatchAvailability_TransferTripsIgnored(t *testing.T) {
	trips := map[string]*entity.TripSet{
		"2026-01-04": {
			Transfers: []entity.Trip{
				directTrip("999", entity.WagonClass{ID: "К", Name: "Купе", FreeSeats: 8, Price: 40000}),
			},
		},
	}

	result := MatchAvailability([]string{"2026-01-04"}, trips, []string{"К"})

	assert.False(t, result.HasTickets)
}

func TestMatchAvailability_MissingDatesSkipped(t *testing.T) {
	trips := map[string]*entity.TripSet{
		"2026-01-05": {Direct: []entity.Trip{
			directTrip("50", entity.WagonClass{ID: "К", Name: "Купе", FreeSeats: 1, Price: 45000}),
		}},
	}

	result := MatchAvailability([]string{"2026-01-04", "2026-01-05", "2026-01-06"}, trips, []string{"К"})

	assert.Equal(t, []string{"2026-01-05"}, result.DatesWithTickets)
}

func TestMatchAvailability_Deterministic(t *testing.T) {
	trips := map[string]*entity.TripSet{
		"2026-01-04": {Direct: []entity.Trip{
			directTrip("743К",
				entity.WagonClass{ID: "К", Name: "Купе", FreeSeats: 3, Price: 52000},
				entity.WagonClass{ID: "Л", Name: "Люкс", FreeSeats: 1, Price: 91000},
			),
		}},
		"2026-01-06": {Direct: []entity.Trip{
			directTrip("86", entity.WagonClass{ID: "Л", Name: "Люкс", FreeSeats: 2, Price: 88000}),
		}},
	}
	dates := []string{"2026-01-04", "2026-01-06"}
	wanted := []string{"Л", "К"}

	first := MatchAvailability(dates, trips, wanted)
	second := MatchAvailability(dates, trips, wanted)

	assert.Equal(t, first, second)
}
