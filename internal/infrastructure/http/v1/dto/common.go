// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import "refiner/pkg/refiner"

// RefinedQuery describes the search and sort parameters that were applied.
type RefinedQuery struct {
	// Params is {search: {...}, sort: {...}} with only the applied parameters.
	Params map[string]any `json:"params"`

	// QueryString encodes Params for building the next request.
	QueryString string `json:"queryString"`

	// Toggles maps every applied sort to its inverse direction.
	Toggles map[string]refiner.Direction `json:"toggles"`
}

// NewRefinedQuery reads the resolved state of ref.
func NewRefinedQuery(ref refiner.Introspector) (RefinedQuery, error) {
	q, err := ref.Query()
	if err != nil {
		return RefinedQuery{}, err
	}

	toggles := make(map[string]refiner.Direction, len(q.Sort))
	for _, s := range q.Sort {
		dir, err := ref.InverseSortDirection(s.Name)
		if err != nil {
			return RefinedQuery{}, err
		}
		toggles[s.Name] = dir
	}

	return RefinedQuery{
		Params:      q.Map(),
		QueryString: q.Encode(),
		Toggles:     toggles,
	}, nil
}

// ListResponse wraps list results with the refinement that produced them.
type ListResponse[T any] struct {
	Items []T          `json:"items"`
	Query RefinedQuery `json:"query"`
}
