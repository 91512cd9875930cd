package model

// Ledger is the parsed view of a scoresheet's point tokens.
//
// StatedTotal is the first token in the document (the total it currently
// claims); Items are the remaining rubric entries in document order.
type Ledger struct {
	StatedTotal int
	Items       []int
}

// ComputedTotal sums the rubric entries.
func (l Ledger) ComputedTotal() int {
	total := 0
	for _, item := range l.Items {
		total += item
	}

	return total
}

// Entries returns every token in document order, stated total first.
func (l Ledger) Entries() []int {
	entries := make([]int, 0, len(l.Items)+1)
	entries = append(entries, l.StatedTotal)

	return append(entries, l.Items...)
}

// Balanced reports whether the stated total already equals the rubric sum.
func (l Ledger) Balanced() bool {
	return l.StatedTotal == l.ComputedTotal()
}
