// Package progress owns progress photos (metadata in postgres, bytes on
// disk), the comparison-photo selection feeding check-in recaps, and the
// macro adherence report.
package progress

import (
	"strings"
	"time"
)

const (
	PhotoTypeCheckin  = "checkin"
	PhotoTypeStarting = "starting"

	categoryTagPrefix = "category:"
	dateTagPrefix     = "date:"
)

type Photo struct {
	ID          int       `json:"id"`
	UserID      int       `json:"userId"`
	Filename    string    `json:"filename"`
	Path        string    `json:"-"`
	Type        string    `json:"type"`
	ContentType string    `json:"contentType,omitempty"`
	Size        int64     `json:"size,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Category    string    `json:"category,omitempty"`
	Date        string    `json:"date,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// decorate fills Category and Date from the tag markers, so rows read
// from postgres carry them without dedicated columns.
func (p *Photo) decorate() {
	p.Category = ExtractTagValue(p.Tags, categoryTagPrefix)
	p.Date = ExtractTagValue(p.Tags, dateTagPrefix)
}

// ExtractTagValue returns the value of the first tag carrying the given
// prefix marker, or an empty string.
func ExtractTagValue(tags []string, prefix string) string {
	for _, tag := range tags {
		if strings.HasPrefix(tag, prefix) {
			return strings.TrimPrefix(tag, prefix)
		}
	}
	return ""
}

// BuildTags assembles the tag markers for a new photo. Empty values
// produce no tag.
func BuildTags(category, date string) []string {
	var tags []string
	if category != "" {
		tags = append(tags, categoryTagPrefix+category)
	}
	if date != "" {
		tags = append(tags, dateTagPrefix+date)
	}
	return tags
}
