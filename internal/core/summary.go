package core

// TypeTotals holds quantity totals for one month or year bucket.
type TypeTotals struct {
	Repair int `json:"repair"`
	Dev    int `json:"dev"`
}

// Summary is the derived view over a receipt collection. It is recomputed
// on demand and never stored.
type Summary struct {
	Monthly map[string]TypeTotals     `json:"monthly"` // keyed by YYYY-MM
	Yearly  map[string]TypeTotals     `json:"yearly"`  // keyed by YYYY
	Status  map[ReceiptStatus]int     `json:"status"`  // keyed by status, over all items
}

// Summarize folds a collection into monthly, yearly and status totals.
// Items without a date are skipped for the monthly/yearly buckets but still
// counted in the status totals. Pure: the input is never modified.
func Summarize(items []ReceiptItem) Summary {
	s := Summary{
		Monthly: make(map[string]TypeTotals),
		Yearly:  make(map[string]TypeTotals),
		Status:  make(map[ReceiptStatus]int),
	}
	for _, it := range items {
		s.Status[it.Status] += it.Qty

		if len(it.Date) < 7 {
			continue
		}
		ym := it.Date[:7]
		yy := it.Date[:4]

		m := s.Monthly[ym]
		y := s.Yearly[yy]
		if it.Type == TypeRepair {
			m.Repair += it.Qty
			y.Repair += it.Qty
		} else {
			m.Dev += it.Qty
			y.Dev += it.Qty
		}
		s.Monthly[ym] = m
		s.Yearly[yy] = y
	}
	return s
}

// FilterByType returns the items matching t, original order preserved.
// An empty type means no filter.
func FilterByType(items []ReceiptItem, t ReceiptType) []ReceiptItem {
	if t == "" {
		return items
	}
	out := make([]ReceiptItem, 0, len(items))
	for _, it := range items {
		if it.Type == t {
			out = append(out, it)
		}
	}
	return out
}
