package id

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNew_IsTimeOrdered(t *testing.T) {
	a, b := New(), New()

	assert.Equal(t, uuid.Version(7), a.Version())
	assert.NotEqual(t, uuid.Nil, a)
	assert.Negative(t, compare(a, b))
}

func compare(a, b ID) int {
	for i := range a {
		if a[i] != b[i] {
			return int(a[i]) - int(b[i])
		}
	}
	return 0
}
