package progress

import (
	"github.com/2beens/fitcoach/internal/checkins/recap"
)

// Comparison names the prior photos a fresh check-in is held against.
type Comparison struct {
	Source string  `json:"comparisonSource"`
	Date   string  `json:"date,omitempty"`
	Photos []Photo `json:"photos,omitempty"`
}

// SelectComparison picks the comparison set out of a user's photos: the
// most recent earlier check-in day that has photos wins, otherwise the
// starting photos, otherwise nothing. Dates are "YYYY-MM-DD" tag values,
// so string order is date order.
func SelectComparison(photos []Photo, currentDate string) Comparison {
	prevDate := ""
	for _, photo := range photos {
		if photo.Type != PhotoTypeCheckin || photo.Date == "" {
			continue
		}
		if currentDate != "" && photo.Date >= currentDate {
			continue
		}
		if photo.Date > prevDate {
			prevDate = photo.Date
		}
	}

	if prevDate != "" {
		var selected []Photo
		for _, photo := range photos {
			if photo.Type == PhotoTypeCheckin && photo.Date == prevDate {
				selected = append(selected, photo)
			}
		}
		return Comparison{
			Source: recap.ComparisonSourcePreviousCheckin,
			Date:   prevDate,
			Photos: selected,
		}
	}

	var starting []Photo
	for _, photo := range photos {
		if photo.Type == PhotoTypeStarting {
			starting = append(starting, photo)
		}
	}
	if len(starting) > 0 {
		return Comparison{
			Source: recap.ComparisonSourceStartingPhotos,
			Photos: starting,
		}
	}

	return Comparison{Source: recap.ComparisonSourceNone}
}
