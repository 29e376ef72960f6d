package refiner

// Sort is a resolved sort direction bound to its definition.
type Sort[Q any] struct {
	definition *Definition[Q]
	direction  Direction
}

func NewSort[Q any](d *Definition[Q], direction Direction) *Sort[Q] {
	return &Sort[Q]{definition: d, direction: direction}
}

func (s *Sort[Q]) Name() string { return s.definition.Name() }

func (s *Sort[Q]) Direction() Direction { return s.direction }

func (s *Sort[Q]) InverseDirection() Direction { return s.direction.Inverse() }

// Apply orders q by the definition column.
func (s *Sort[Q]) Apply(b Builder[Q], q Q) Q {
	return b.OrderBy(q, s.definition.ColumnName(), s.direction)
}
