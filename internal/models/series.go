package models

import (
	"fmt"
	"strings"
)

// Series is one plotted dataset as returned by the chart endpoint.
type Series struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// Point is a single (label, value) pair of a Series.
type Point struct {
	Label string
	Value float64
}

// Validate reports a series whose labels and values are not paired one to one.
func (s Series) Validate() error {
	if len(s.Labels) != len(s.Values) {
		return fmt.Errorf("series has %d labels but %d values", len(s.Labels), len(s.Values))
	}
	return nil
}

func (s Series) Len() int {
	return len(s.Labels)
}

func (s Series) Empty() bool {
	return len(s.Labels) == 0
}

// Points pairs labels with values in order. Extra labels or values are dropped.
func (s Series) Points() []Point {
	n := len(s.Labels)
	if len(s.Values) < n {
		n = len(s.Values)
	}
	out := make([]Point, n)
	for i := 0; i < n; i++ {
		out[i] = Point{Label: s.Labels[i], Value: s.Values[i]}
	}
	return out
}

func (s Series) Equal(o Series) bool {
	if len(s.Labels) != len(o.Labels) || len(s.Values) != len(o.Values) {
		return false
	}
	for i := range s.Labels {
		if s.Labels[i] != o.Labels[i] {
			return false
		}
	}
	for i := range s.Values {
		if s.Values[i] != o.Values[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy that shares no backing arrays with s.
func (s Series) Clone() Series {
	out := Series{}
	if s.Labels != nil {
		out.Labels = append([]string(nil), s.Labels...)
	}
	if s.Values != nil {
		out.Values = append([]float64(nil), s.Values...)
	}
	return out
}

// GraphType selects how a series is drawn.
type GraphType int

const (
	Bar GraphType = iota
	Line
)

func (g GraphType) String() string {
	switch g {
	case Bar:
		return "bar"
	case Line:
		return "line"
	default:
		return "unknown"
	}
}

// Toggle flips between bar and line.
func (g GraphType) Toggle() GraphType {
	if g == Bar {
		return Line
	}
	return Bar
}

func ParseGraphType(s string) (GraphType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "bar":
		return Bar, nil
	case "line":
		return Line, nil
	default:
		return Bar, fmt.Errorf("unknown graph type %q (valid: bar, line)", s)
	}
}
