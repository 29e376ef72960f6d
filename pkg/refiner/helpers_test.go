package refiner

import "fmt"

// ops records the operations issued by a refiner, one string per call.
type ops []string

type recorder struct{}

func (recorder) Equals(q ops, column string, value any) ops {
	return append(q, fmt.Sprintf("eq %s %v", column, value))
}

func (recorder) In(q ops, column string, values []any) ops {
	return append(q, fmt.Sprintf("in %s %v", column, values))
}

func (recorder) Like(q ops, column string, pattern string) ops {
	return append(q, fmt.Sprintf("like %s %s", column, pattern))
}

func (recorder) OrderBy(q ops, column string, direction Direction) ops {
	return append(q, fmt.Sprintf("order %s %s", column, direction))
}

type testRefiner struct {
	defs     []*Definition[ops]
	defaults []SortParam
}

func (t testRefiner) Definitions() []*Definition[ops] { return t.defs }

func (t testRefiner) DefaultSorts() []SortParam { return t.defaults }

type otherRefiner struct{}

func (otherRefiner) Definitions() []*Definition[ops] {
	return []*Definition[ops]{Define[ops]("name").Search()}
}

func defs(d ...*Definition[ops]) testRefiner {
	return testRefiner{defs: d}
}
