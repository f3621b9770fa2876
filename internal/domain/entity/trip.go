package entity

// Station represents a railway station as returned by the booking API
type Station struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// WagonClass represents one fare class offer on a train
type WagonClass struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	FreeSeats int    `json:"free_seats"`
	Price     int64  `json:"price"` // minor currency units
}

// Train represents the train portion of a trip
type Train struct {
	Number       string       `json:"number"`
	WagonClasses []WagonClass `json:"wagon_classes"`
}

// Trip represents a single itinerary between two stations
type Trip struct {
	Train       Train   `json:"train"`
	DepartAt    int64   `json:"depart_at"` // epoch seconds
	ArriveAt    int64   `json:"arrive_at"`
	StationFrom Station `json:"station_from"`
	StationTo   Station `json:"station_to"`
}

// TripSet is the booking API response for one (route, date) query.
// Transfer itineraries are fetched but never matched against.
type TripSet struct {
	Direct    []Trip `json:"direct"`
	Transfers []Trip `json:"with_transfers,omitempty"`
}
