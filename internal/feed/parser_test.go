package feed

import (
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
)

func TestParser_Parse(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		name          string
		feedContent   string
		expectError   bool
		expectedCount int
		validateFunc  func(t *testing.T, articles []Article)
	}{
		{
			name: "RSS with content:encoded",
			feedContent: `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/">
	<channel>
		<title>AWS Blog</title>
		<item>
			<title>Amazon S3 の新機能</title>
			<link>https://aws.amazon.com/jp/blogs/news/s3-feature/</link>
			<description>Short teaser</description>
			<content:encoded><![CDATA[<p>Full body</p>]]></content:encoded>
			<pubDate>Wed, 01 Oct 2025 09:00:00 +0900</pubDate>
		</item>
		<item>
			<title>Lambda update</title>
			<link>https://aws.amazon.com/jp/blogs/news/lambda/</link>
			<description>Description only</description>
			<pubDate>Tue, 30 Sep 2025 12:00:00 GMT</pubDate>
		</item>
	</channel>
</rss>`,
			expectedCount: 2,
			validateFunc: func(t *testing.T, articles []Article) {
				first := articles[0]
				if first.Title != "Amazon S3 の新機能" {
					t.Errorf("unexpected title %q", first.Title)
				}
				if first.Body != "<p>Full body</p>" {
					t.Errorf("expected content body, got %q", first.Body)
				}
				if first.Link != "https://aws.amazon.com/jp/blogs/news/s3-feature/" {
					t.Errorf("unexpected link %q", first.Link)
				}
				want := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
				if !first.Published.Equal(want) || first.Published.Location() != time.UTC {
					t.Errorf("expected %v in UTC, got %v", want, first.Published)
				}
				if articles[1].Body != "Description only" {
					t.Errorf("expected description fallback, got %q", articles[1].Body)
				}
			},
		},
		{
			name: "Atom feed uses updated when published is absent",
			feedContent: `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
	<title>Atom Feed</title>
	<entry>
		<title>Atom Entry 1</title>
		<link href="https://example.com/entry1"/>
		<id>entry-1</id>
		<updated>2025-10-01T00:00:00Z</updated>
		<content type="html">&lt;p&gt;Entry content&lt;/p&gt;</content>
	</entry>
</feed>`,
			expectedCount: 1,
			validateFunc: func(t *testing.T, articles []Article) {
				if articles[0].Body != "<p>Entry content</p>" {
					t.Errorf("expected content '<p>Entry content</p>', got %s", articles[0].Body)
				}
			},
		},
		{
			name: "items without dates are skipped",
			feedContent: `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
	<channel>
		<title>Undated</title>
		<item><title>No date</title><link>https://example.com/a</link></item>
	</channel>
</rss>`,
			expectedCount: 0,
		},
		{
			name:        "invalid XML",
			feedContent: "not valid XML",
			expectError: true,
		},
		{
			name:          "empty feed",
			feedContent:   `<?xml version="1.0" encoding="UTF-8"?><rss version="2.0"><channel></channel></rss>`,
			expectedCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			articles, err := parser.Parse([]byte(tt.feedContent))

			if tt.expectError && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if len(articles) != tt.expectedCount {
				t.Fatalf("expected %d articles, got %d", tt.expectedCount, len(articles))
			}
			if tt.validateFunc != nil && len(articles) > 0 {
				tt.validateFunc(t, articles)
			}
		})
	}
}

func TestGetContent(t *testing.T) {
	if got := getContent(&gofeed.Item{Content: "c", Description: "d"}); got != "c" {
		t.Errorf("expected content, got %q", got)
	}
	if got := getContent(&gofeed.Item{Description: "d"}); got != "d" {
		t.Errorf("expected description, got %q", got)
	}
	if got := getContent(&gofeed.Item{}); got != "" {
		t.Errorf("expected empty body, got %q", got)
	}
}
