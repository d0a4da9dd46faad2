package model

// LatLng represents geographic coordinates
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the coordinates fall inside WGS84 bounds
func (l LatLng) Valid() bool {
	return l.Lat >= -90 && l.Lat <= 90 && l.Lng >= -180 && l.Lng <= 180
}

// Restaurant is the normalized record returned by the adapter
type Restaurant struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Address      string      `json:"address"`
	Rating       float64     `json:"rating"`
	RatingCount  int         `json:"ratingCount"`
	PriceLevel   *PriceLevel `json:"priceLevel,omitempty"`
	Location     *LatLng     `json:"location,omitempty"`
	PhotoURL     *string     `json:"photoUrl"`
	Phone        string      `json:"phone,omitempty"`
	Website      string      `json:"website,omitempty"`
	OpeningHours []string    `json:"openingHours,omitempty"`
}

// PriceLabel returns the human readable price label of the restaurant
func (r Restaurant) PriceLabel() string {
	return r.PriceLevel.Label()
}

// NearbyRequest represents the parameters of a nearby search
type NearbyRequest struct {
	Lat    float64
	Lng    float64
	Radius int
}

// Location returns the request coordinates
func (r NearbyRequest) Location() LatLng {
	return LatLng{Lat: r.Lat, Lng: r.Lng}
}
