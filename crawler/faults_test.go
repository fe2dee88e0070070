package crawler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFaultBudgetExhaustsAtCeiling(t *testing.T) {
	b := NewFaultBudget(3)
	b.Spend()
	b.Spend()
	assert.False(t, b.Exhausted())
	b.Spend()
	assert.True(t, b.Exhausted())
}
