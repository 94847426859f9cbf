package docstore

import "context"

// Document is one retrieved snippet with its metadata and vector distance.
// Smaller distance means more similar; a nil Distance means the backend did
// not report one.
type Document struct {
	Text     string
	Metadata map[string]any
	Distance *float64
}

// Score converts the document distance into a similarity score in [0,1].
func (d Document) Score() float64 {
	if d.Distance == nil {
		return 0
	}
	return DistanceToScore(*d.Distance)
}

// Filters narrows framework document searches.
type Filters struct {
	Framework   string
	IsFactsheet *bool
}

// Factsheet is the static per-framework record stored alongside the
// framework docs: raw D1..D6 dimension scores plus descriptive text.
type Factsheet struct {
	Framework string
	Text      string
	Dims      map[string]int
	URL       string
}

// Store is the narrow retrieval contract the recommendation pipeline
// consumes. Implementations must keep result ordering by ascending distance.
type Store interface {
	// SearchUseCases queries the use-case collection.
	SearchUseCases(ctx context.Context, query string, n int) ([]Document, error)
	// SearchFrameworkDocs queries the framework docs collection, optionally
	// filtered by framework name and factsheet flag.
	SearchFrameworkDocs(ctx context.Context, query string, f Filters, n int) ([]Document, error)
	// GetFactsheet returns the factsheet for the named framework, or nil
	// when none is stored.
	GetFactsheet(ctx context.Context, framework string) (*Factsheet, error)
	// ListFactsheets returns all stored factsheets.
	ListFactsheets(ctx context.Context) ([]Factsheet, error)
}

// DistanceToScore maps a vector distance onto a similarity score via
// 1/(1+distance), clamped to [0,1].
func DistanceToScore(distance float64) float64 {
	s := 1.0 / (1.0 + distance)
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}
