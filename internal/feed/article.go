package feed

import "time"

// Article is a post read from the feed. It is never persisted.
type Article struct {
	Title     string
	Body      string
	Link      string
	Published time.Time
}

// DefaultWindow is the trailing recency window applied to each run.
const DefaultWindow = 24 * time.Hour

// FilterRecent returns the articles published strictly less than window
// before now, preserving feed order. A post exactly window old is excluded.
func FilterRecent(articles []Article, now time.Time, window time.Duration) []Article {
	now = now.UTC()
	recent := make([]Article, 0, len(articles))
	for _, a := range articles {
		if now.Sub(a.Published) < window {
			recent = append(recent, a)
		}
	}
	return recent
}
