package usecase

import (
	"github.com/dvoretskiyy/UKZTrainMonitor/internal/domain/entity"
)

// MatchAvailability computes which of the queried dates have qualifying
// tickets. Only direct trips are inspected. An offer qualifies when its
// class is in wantedClasses and it has free seats. Dates keep the order
// they were first matched in, scanning the caller-supplied sequence; every
// qualifying offer for a date is retained.
//
// Pure function: identical inputs always yield identical results.
func MatchAvailability(dates []string, trips map[string]*entity.TripSet, wantedClasses []string) *entity.AvailabilityResult {
	wanted := make(map[string]struct{}, len(wantedClasses))
	for _, class := range wantedClasses {
		wanted[class] = struct{}{}
	}

	result := &entity.AvailabilityResult{
		DatesWithTickets: []string{},
		Details:          make(map[string][]entity.TripOffer),
	}

	for _, date := range dates {
		tripSet := trips[date]
		if tripSet == nil {
			continue
		}

		for _, trip := range tripSet.Direct {
			for _, wagon := range trip.Train.WagonClasses {
				if _, ok := wanted[wagon.ID]; !ok || wagon.FreeSeats <= 0 {
					continue
				}

				result.HasTickets = true
				if _, seen := result.Details[date]; !seen {
					result.DatesWithTickets = append(result.DatesWithTickets, date)
				}

				result.Details[date] = append(result.Details[date], entity.TripOffer{
					TrainNumber: trip.Train.Number,
					DepartAt:    trip.DepartAt,
					ArriveAt:    trip.ArriveAt,
					StationFrom: trip.StationFrom,
					StationTo:   trip.StationTo,
					WagonType:   wagon.ID,
					WagonName:   wagon.Name,
					FreeSeats:   wagon.FreeSeats,
					Price:       wagon.Price,
				})
			}
		}
	}

	return result
}
