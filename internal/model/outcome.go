package model

// Status classifies a proposed assignment against the historical record.
type Status string

const (
	StatusVerified   Status = "VERIFIED"
	StatusMismatch   Status = "MISMATCH"
	StatusNoProducts Status = "NO_PRODUCTS"
	StatusNoData     Status = "NO_DATA"
)

// Valid reports whether s is one of the four known outcome kinds.
func (s Status) Valid() bool {
	switch s {
	case StatusVerified, StatusMismatch, StatusNoProducts, StatusNoData:
		return true
	}
	return false
}

// Outcome is the result of verifying one Pair.
type Outcome struct {
	Name        string   `json:"name"`
	Product     string   `json:"product"`
	ProductID   string   `json:"product_id,omitempty"` // catalog id the product resolved to, if any
	Query       string   `json:"query"`                // normalized form of Name
	Status      Status   `json:"status"`
	Verified    bool     `json:"verified"`
	MatchedName string   `json:"matched_name,omitempty"`
	MatchedKey  string   `json:"matched_key,omitempty"`
	Score       int      `json:"score"`
	Products    []string `json:"products"`
	Message     string   `json:"message"`
}

// BatchStats aggregates outcome counts for a batch run. Malformed rows are
// also counted under NoData.
type BatchStats struct {
	Total      int `json:"total"`
	Verified   int `json:"verified"`
	Mismatches int `json:"mismatches"`
	NoData     int `json:"no_data"`
	NoProducts int `json:"no_products"`
	Malformed  int `json:"malformed"`
}

// Add counts one outcome.
func (s *BatchStats) Add(o Outcome) {
	s.Total++
	switch o.Status {
	case StatusVerified:
		s.Verified++
	case StatusMismatch:
		s.Mismatches++
	case StatusNoProducts:
		s.NoProducts++
	default:
		s.NoData++
	}
}
