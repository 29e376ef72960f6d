package refiner

// Search is a resolved, validated search value bound to its definition.
type Search[Q any] struct {
	definition *Definition[Q]
	filter     Filter[Q]
	value      any
}

// NewSearch binds value to d using the strategy configured on d.
func NewSearch[Q any](d *Definition[Q], value any) (*Search[Q], error) {
	f, err := d.SearchFilter()
	if err != nil {
		return nil, err
	}
	return &Search[Q]{definition: d, filter: f, value: value}, nil
}

func (s *Search[Q]) Name() string { return s.definition.Name() }

func (s *Search[Q]) Value() any { return s.value }

// Apply constrains q through the bound strategy.
func (s *Search[Q]) Apply(b Builder[Q], q Q) (Q, error) {
	return s.filter.Apply(b, q, s.definition, s.value)
}
