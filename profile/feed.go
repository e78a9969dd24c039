package profile

import "sort"

// FeedType classifies an activity feed entry.
type FeedType string

const (
	FeedCareer      FeedType = "career"
	FeedPublication FeedType = "publication"
	FeedEducation   FeedType = "education"
	FeedAward       FeedType = "award"
	FeedLocation    FeedType = "location"
	FeedMilestone   FeedType = "milestone"
	FeedGeneral     FeedType = "general"
)

// FeedTypes lists every known feed type in canonical order.
var FeedTypes = []FeedType{
	FeedCareer, FeedPublication, FeedEducation, FeedAward, FeedLocation, FeedMilestone, FeedGeneral,
}

func (t FeedType) Valid() bool {
	for _, known := range FeedTypes {
		if t == known {
			return true
		}
	}
	return false
}

type FeedItem struct {
	Date        string   `json:"date"`
	Type        FeedType `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	URL         string   `json:"url,omitempty"`
}

// AggregatedFeedItem is a feed entry tagged with the profile it came from.
type AggregatedFeedItem struct {
	FeedItem
	ProfileSlug   string
	ProfileName   string
	ProfileAvatar string
}

// AggregateFeed merges the activity feeds of docs, newest first. Dates are
// compared as strings, so ISO dates sort correctly; entries with equal dates
// keep document order.
func AggregateFeed(docs ...*Document) []AggregatedFeedItem {
	var items []AggregatedFeedItem
	for _, d := range docs {
		if d == nil {
			continue
		}
		for _, it := range d.ActivityFeed {
			items = append(items, AggregatedFeedItem{
				FeedItem:      it,
				ProfileSlug:   d.Meta.Slug,
				ProfileName:   d.Meta.Name,
				ProfileAvatar: d.Hero.Avatar,
			})
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date > items[j].Date
	})
	return items
}
