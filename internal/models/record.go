package models

// DateRange bounds a record query. Either side may be empty; the backend decides
// what an empty bound means.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Criteria is the full filter state sent with every record query.
// It is a plain value: copying it copies every level.
type Criteria struct {
	DateRange DateRange `json:"dateRange"`
	Keyword   string    `json:"keyword"`
}

// Record is one row of a filtered query.
type Record struct {
	Description string `json:"description"`
	Date        string `json:"date"`
}

func (r Record) String() string {
	return r.Description + " - " + r.Date
}
