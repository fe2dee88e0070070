package crawler

// FaultBudget bounds how many recoverable failures a crawl tolerates.
// Exhaustion is observed at the next iteration boundary, never mid-visit.
type FaultBudget struct {
	remaining int
}

func NewFaultBudget(ceiling int) *FaultBudget {
	return &FaultBudget{remaining: ceiling}
}

func (b *FaultBudget) Spend() {
	b.remaining--
}

func (b *FaultBudget) Exhausted() bool {
	return b.remaining <= 0
}
