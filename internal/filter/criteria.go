package filter

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/matheuskafuri/vizterm/internal/models"
)

var ErrUnknownField = errors.New("unknown filter field")

// Field names one leaf of the filter criteria.
type Field int

const (
	Start Field = iota
	End
	Keyword
)

// Fields lists the editable fields in form order.
var Fields = []Field{Start, End, Keyword}

func (f Field) String() string {
	switch f {
	case Start:
		return "start"
	case End:
		return "end"
	case Keyword:
		return "keyword"
	default:
		return "unknown"
	}
}

func (f Field) Label() string {
	switch f {
	case Start:
		return "Start Date"
	case End:
		return "End Date"
	case Keyword:
		return "Keyword"
	default:
		return ""
	}
}

// ParseField accepts query parameter names and form input names.
func ParseField(name string) (Field, error) {
	switch name {
	case "start", "startDate":
		return Start, nil
	case "end", "endDate":
		return End, nil
	case "keyword":
		return Keyword, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
}

// Set returns a copy of c with exactly one field replaced. c is not modified.
func Set(c models.Criteria, f Field, value string) (models.Criteria, error) {
	next := c
	switch f {
	case Start:
		next.DateRange = models.DateRange{Start: value, End: c.DateRange.End}
	case End:
		next.DateRange = models.DateRange{Start: c.DateRange.Start, End: value}
	case Keyword:
		next.Keyword = value
	default:
		return c, fmt.Errorf("%w: %d", ErrUnknownField, int(f))
	}
	return next, nil
}

// Get reads one field of c.
func Get(c models.Criteria, f Field) string {
	switch f {
	case Start:
		return c.DateRange.Start
	case End:
		return c.DateRange.End
	case Keyword:
		return c.Keyword
	default:
		return ""
	}
}

// Query marshals c into request parameters. Empty values are kept.
func Query(c models.Criteria) url.Values {
	return url.Values{
		"start":   []string{c.DateRange.Start},
		"end":     []string{c.DateRange.End},
		"keyword": []string{c.Keyword},
	}
}
