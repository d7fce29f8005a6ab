// Package feed decodes RSS and Atom record responses.
package feed

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/matheuskafuri/vizterm/internal/models"
)

const dateLayout = "2006-01-02"

// ParseRecords turns each feed item into a record, keeping the feed's order.
func ParseRecords(body []byte) ([]models.Record, error) {
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing feed: %w", err)
	}

	records := make([]models.Record, 0, len(feed.Items))
	for _, item := range feed.Items {
		records = append(records, recordFromItem(item))
	}
	return records, nil
}

func recordFromItem(item *gofeed.Item) models.Record {
	desc := strings.TrimSpace(item.Title)
	if desc == "" {
		desc = truncate(stripHTML(item.Description), 300)
	}

	var date string
	switch {
	case item.PublishedParsed != nil:
		date = item.PublishedParsed.Format(dateLayout)
	case item.UpdatedParsed != nil:
		date = item.UpdatedParsed.Format(dateLayout)
	}

	return models.Record{Description: desc, Date: date}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func stripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
