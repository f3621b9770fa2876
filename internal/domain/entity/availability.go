package entity

// TripOffer is one qualifying wagon-class offer discovered during a check
type TripOffer struct {
	TrainNumber string  `json:"train_number"`
	DepartAt    int64   `json:"depart_at"`
	ArriveAt    int64   `json:"arrive_at"`
	StationFrom Station `json:"station_from"`
	StationTo   Station `json:"station_to"`
	WagonType   string  `json:"wagon_type"`
	WagonName   string  `json:"wagon_name"`
	FreeSeats   int     `json:"free_seats"`
	Price       int64   `json:"price"`
}

// AvailabilityResult aggregates one route-check cycle.
// DatesWithTickets keeps the order dates were first matched in; Details maps
// each matched date to every qualifying offer found on it.
type AvailabilityResult struct {
	HasTickets       bool                   `json:"has_tickets"`
	DatesWithTickets []string               `json:"dates_with_tickets"`
	Details          map[string][]TripOffer `json:"details"`
}
