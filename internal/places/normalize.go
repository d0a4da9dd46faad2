package places

import "github.com/alexivanou/restaurant-finder/internal/model"

// normalizeNearby maps a nearby search result into a Restaurant
func (c *Client) normalizeNearby(p nearbyResult) model.Restaurant {
	return model.Restaurant{
		ID:           p.PlaceID,
		Name:         p.Name,
		Address:      preferAddress(p.FormattedAddress, p.Vicinity),
		Rating:       floatOrZero(p.Rating),
		RatingCount:  intOrZero(p.UserRatingsTotal),
		PriceLevel:   model.NewPriceLevel(p.PriceLevel),
		Location:     toLatLng(p.Geometry),
		PhotoURL:     c.firstPhotoURL(p.Photos),
		OpeningHours: weekdayText(p.OpeningHours),
	}
}

// normalizeDetails maps a details result into a Restaurant. The requested id
// wins over the upstream one so list and details records always share an id.
func (c *Client) normalizeDetails(p detailsResult, requestedID string) model.Restaurant {
	id := requestedID
	if id == "" {
		id = p.PlaceID
	}
	return model.Restaurant{
		ID:           id,
		Name:         p.Name,
		Address:      preferAddress(p.FormattedAddress, p.Vicinity),
		Rating:       floatOrZero(p.Rating),
		RatingCount:  intOrZero(p.UserRatingsTotal),
		PriceLevel:   model.NewPriceLevel(p.PriceLevel),
		Location:     toLatLng(p.Geometry),
		PhotoURL:     c.firstPhotoURL(p.Photos),
		Phone:        p.FormattedPhoneNumber,
		Website:      p.Website,
		OpeningHours: weekdayText(p.OpeningHours),
	}
}

func (c *Client) firstPhotoURL(photos []photo) *string {
	for _, ph := range photos {
		if ph.PhotoReference != "" {
			link := c.PhotoURL(ph.PhotoReference)
			return &link
		}
	}
	return nil
}

func preferAddress(formatted, vicinity string) string {
	if formatted != "" {
		return formatted
	}
	return vicinity
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func intOrZero(v *int) int {
	if v == nil || *v < 0 {
		return 0
	}
	return *v
}

func toLatLng(g *geometry) *model.LatLng {
	if g == nil || g.Location == nil {
		return nil
	}
	return &model.LatLng{Lat: g.Location.Lat, Lng: g.Location.Lng}
}

func weekdayText(h *openingHours) []string {
	if h == nil || len(h.WeekdayText) == 0 {
		return nil
	}
	lines := make([]string, len(h.WeekdayText))
	copy(lines, h.WeekdayText)
	return lines
}
