package feed

import (
	"bytes"
	"fmt"

	"github.com/mmcdole/gofeed"

	"github.com/pders01/feedquiz/internal/debuglog"
)

type Parser struct {
	parser *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{
		parser: gofeed.NewParser(),
	}
}

// Parse converts an RSS or Atom document into articles in feed order.
// Items without a parsable publish time cannot be placed in the recency
// window and are skipped.
func (p *Parser) Parse(data []byte) ([]Article, error) {
	feed, err := p.parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing feed: %w", err)
	}

	articles := make([]Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		published := item.PublishedParsed
		if published == nil {
			published = item.UpdatedParsed
		}
		if published == nil {
			debuglog.Debugf("skipping item without publish time: %q", item.Title)
			continue
		}

		articles = append(articles, Article{
			Title:     item.Title,
			Body:      getContent(item),
			Link:      item.Link,
			Published: published.UTC(),
		})
	}

	return articles, nil
}

// getContent prefers the full content:encoded body over the description.
func getContent(item *gofeed.Item) string {
	if item.Content != "" {
		return item.Content
	}
	return item.Description
}
