package core

import (
	"reflect"
	"testing"
)

func TestSummarizeSingleRepair(t *testing.T) {
	items := []ReceiptItem{
		{ID: "1", Type: TypeRepair, Date: "2024-03-05", Qty: 3, Status: StatusReceived},
	}
	s := Summarize(items)

	if got := s.Monthly["2024-03"]; got != (TypeTotals{Repair: 3}) {
		t.Fatalf("monthly = %+v", got)
	}
	if got := s.Yearly["2024"]; got != (TypeTotals{Repair: 3}) {
		t.Fatalf("yearly = %+v", got)
	}
	if got := s.Status[StatusReceived]; got != 3 {
		t.Fatalf("status = %d", got)
	}
}

func TestSummarizeMixedTypesAndMonths(t *testing.T) {
	items := []ReceiptItem{
		{Type: TypeRepair, Date: "2024-03-05", Qty: 2, Status: StatusReceived},
		{Type: TypeDev, Date: "2024-03-20", Qty: 1, Status: StatusDevCompleted},
		{Type: TypeRepair, Date: "2024-04-01", Qty: 4, Status: StatusRepairCompleted},
		{Type: TypeDev, Date: "2025-01-15", Qty: 5, Status: StatusReceived},
	}
	s := Summarize(items)

	if got := s.Monthly["2024-03"]; got != (TypeTotals{Repair: 2, Dev: 1}) {
		t.Fatalf("2024-03 = %+v", got)
	}
	if got := s.Monthly["2024-04"]; got != (TypeTotals{Repair: 4}) {
		t.Fatalf("2024-04 = %+v", got)
	}
	if got := s.Yearly["2024"]; got != (TypeTotals{Repair: 6, Dev: 1}) {
		t.Fatalf("2024 = %+v", got)
	}
	if got := s.Yearly["2025"]; got != (TypeTotals{Dev: 5}) {
		t.Fatalf("2025 = %+v", got)
	}
	if s.Status[StatusReceived] != 7 || s.Status[StatusDevCompleted] != 1 || s.Status[StatusRepairCompleted] != 4 {
		t.Fatalf("status totals = %+v", s.Status)
	}
}

func TestSummarizeEmptyDateCountsStatusOnly(t *testing.T) {
	items := []ReceiptItem{
		{Type: TypeRepair, Date: "", Qty: 2, Status: StatusReceived},
		{Type: TypeRepair, Date: "2024-03-05", Qty: 1, Status: StatusReceived},
	}
	s := Summarize(items)

	if got := s.Monthly["2024-03"]; got != (TypeTotals{Repair: 1}) {
		t.Fatalf("dateless item leaked into monthly: %+v", s.Monthly)
	}
	if len(s.Monthly) != 1 || len(s.Yearly) != 1 {
		t.Fatalf("unexpected buckets: monthly=%v yearly=%v", s.Monthly, s.Yearly)
	}
	if got := s.Status[StatusReceived]; got != 3 {
		t.Fatalf("status must cover dateless items, got %d", got)
	}
}

func TestSummarizeIdempotent(t *testing.T) {
	items := []ReceiptItem{
		{Type: TypeRepair, Date: "2024-03-05", Qty: 3, Status: StatusReceived},
		{Type: TypeDev, Date: "", Qty: 1, Status: StatusExchanged},
	}
	a := Summarize(items)
	b := Summarize(items)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("summaries differ:\n%+v\n%+v", a, b)
	}
}

func TestFilterByType(t *testing.T) {
	items := []ReceiptItem{
		{ID: "1", Type: TypeRepair},
		{ID: "2", Type: TypeDev},
		{ID: "3", Type: TypeRepair},
	}

	dev := FilterByType(items, TypeDev)
	if len(dev) != 1 || dev[0].ID != "2" {
		t.Fatalf("dev filter = %+v", dev)
	}

	repair := FilterByType(items, TypeRepair)
	if len(repair) != 2 || repair[0].ID != "1" || repair[1].ID != "3" {
		t.Fatalf("repair filter must preserve order: %+v", repair)
	}

	all := FilterByType(items, "")
	if len(all) != 3 {
		t.Fatalf("empty filter = %+v", all)
	}
}
