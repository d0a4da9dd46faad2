package places

// Wire shapes of the Places web service. They stay inside this package;
// everything leaving it is a model.Restaurant.

// Statuses reported in the body of every Places response
const (
	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"
)

type nearbyResponse struct {
	Results      []nearbyResult `json:"results"`
	Status       string         `json:"status"`
	ErrorMessage string         `json:"error_message,omitempty"`
}

type nearbyResult struct {
	PlaceID          string        `json:"place_id"`
	Name             string        `json:"name"`
	Vicinity         string        `json:"vicinity"`
	FormattedAddress string        `json:"formatted_address"`
	Rating           *float64      `json:"rating"`
	UserRatingsTotal *int          `json:"user_ratings_total"`
	PriceLevel       *int          `json:"price_level"`
	Geometry         *geometry     `json:"geometry"`
	Photos           []photo       `json:"photos"`
	OpeningHours     *openingHours `json:"opening_hours"`
}

type detailsResponse struct {
	Result       *detailsResult `json:"result"`
	Status       string         `json:"status"`
	ErrorMessage string         `json:"error_message,omitempty"`
}

type detailsResult struct {
	PlaceID              string        `json:"place_id"`
	Name                 string        `json:"name"`
	FormattedAddress     string        `json:"formatted_address"`
	Vicinity             string        `json:"vicinity"`
	Rating               *float64      `json:"rating"`
	UserRatingsTotal     *int          `json:"user_ratings_total"`
	PriceLevel           *int          `json:"price_level"`
	FormattedPhoneNumber string        `json:"formatted_phone_number"`
	Website              string        `json:"website"`
	Geometry             *geometry     `json:"geometry"`
	Photos               []photo       `json:"photos"`
	OpeningHours         *openingHours `json:"opening_hours"`
}

type geometry struct {
	Location *location `json:"location"`
}

type location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type photo struct {
	PhotoReference string `json:"photo_reference"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
}

type openingHours struct {
	OpenNow     *bool    `json:"open_now"`
	WeekdayText []string `json:"weekday_text"`
}
