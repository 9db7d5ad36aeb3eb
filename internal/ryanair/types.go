package ryanair

// Airport describes an entry from the active airports listing.
type Airport struct {
	IATACode string `json:"iataCode"`
	Name     string `json:"name"`
	City     struct {
		Name string `json:"name"`
	} `json:"city"`
	Country struct {
		Name string `json:"name"`
	} `json:"country"`
}

// Destination describes a route reachable from an origin airport.
type Destination struct {
	ArrivalAirport struct {
		IATACode string `json:"iataCode"`
		Name     string `json:"name"`
		Country  struct {
			Name string `json:"name"`
		} `json:"country"`
	} `json:"arrivalAirport"`
}

// Price is a fare amount with its currency.
type Price struct {
	Value        float64 `json:"value"`
	CurrencyCode string  `json:"currencyCode"`
}

// DayFare is the cheapest fare for a single departure day.
// Entries may be null in the API response, hence pointer slices upstream.
type DayFare struct {
	Day           string `json:"day"`
	DepartureDate string `json:"departureDate"`
	ArrivalDate   string `json:"arrivalDate"`
	Price         *Price `json:"price"`
	Unavailable   bool   `json:"unavailable"`
	SoldOut       bool   `json:"soldOut"`
}

// CheapestFares is the farfnd cheapestPerDay response.
type CheapestFares struct {
	Outbound struct {
		Fares []*DayFare `json:"fares"`
	} `json:"outbound"`
}

// FareDetail is a priced fare type on a specific flight.
type FareDetail struct {
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
}

// FlightFares groups the fares offered on a flight.
type FlightFares struct {
	Fares []FareDetail `json:"fares"`
}

// Flight is a single scheduled flight in an availability response.
// Time holds departure and arrival timestamps in local time.
type Flight struct {
	FlightNumber string       `json:"flightNumber"`
	Time         []string     `json:"time"`
	RegularFare  *FlightFares `json:"regularFare"`
	BusinessFare *FareDetail  `json:"businessFare"`
}

// TripDate holds the flights available on one outbound date.
type TripDate struct {
	DateOut string   `json:"dateOut"`
	Flights []Flight `json:"flights"`
}

// Trip is one direction of an availability search.
type Trip struct {
	Origin      string     `json:"origin"`
	Destination string     `json:"destination"`
	Dates       []TripDate `json:"dates"`
}

// Availability is the booking/v4 availability response.
type Availability struct {
	Currency string `json:"currency"`
	Trips    []Trip `json:"trips"`
}

// AvailabilityQuery describes an availability search request.
type AvailabilityQuery struct {
	Origin      string
	Destination string
	DateOut     string // YYYY-MM-DD
	DateIn      string // YYYY-MM-DD, empty for one-way
	Adults      int
	Teens       int
	Children    int
	Infants     int
	FlexDaysOut int
	FlexDaysIn  int
}
