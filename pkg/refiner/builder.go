package refiner

import "strings"

// Direction is a resolved sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection lowercases s and reports whether it names a valid direction.
func ParseDirection(s string) (Direction, bool) {
	switch d := Direction(strings.ToLower(s)); d {
	case Asc, Desc:
		return d, true
	default:
		return "", false
	}
}

// Inverse returns the opposite direction.
func (d Direction) Inverse() Direction {
	if d == Asc {
		return Desc
	}
	return Asc
}

// LikeMode selects where wildcards are placed around a LIKE search value.
type LikeMode string

const (
	LikeBoth  LikeMode = "both"
	LikeStart LikeMode = "start"
	LikeEnd   LikeMode = "end"
)

// Valid reports whether m is one of the known modes.
func (m LikeMode) Valid() bool {
	switch m {
	case LikeBoth, LikeStart, LikeEnd:
		return true
	}
	return false
}

// Pattern wraps value with wildcards according to the mode.
// Unknown modes behave like LikeBoth.
func (m LikeMode) Pattern(value string) string {
	switch m {
	case LikeEnd:
		return value + "%"
	case LikeStart:
		return "%" + value
	default:
		return "%" + value + "%"
	}
}

// Builder adapts a concrete query builder Q to the operations refiners issue.
// Implementations return the updated query; immutable builders such as
// squirrel return a new value, chainable ones may return the receiver.
type Builder[Q any] interface {
	Equals(q Q, column string, value any) Q
	In(q Q, column string, values []any) Q
	Like(q Q, column string, pattern string) Q
	OrderBy(q Q, column string, direction Direction) Q
}

// CustomFunc receives the live query and the resolved raw value.
type CustomFunc[Q any] func(q Q, value any) Q
