package core

import (
	"errors"
	"strings"
)

const (
	TypeRepair ReceiptType = "수리"
	TypeDev    ReceiptType = "개발"
)

const (
	StatusReceived        ReceiptStatus = "접수"
	StatusRepairCompleted ReceiptStatus = "수리완료"
	StatusRepairFailed    ReceiptStatus = "수리불가"
	StatusExchanged       ReceiptStatus = "교환"
	StatusDevCompleted    ReceiptStatus = "개발완료"
)

type (
	ReceiptType   string
	ReceiptStatus string

	// ReceiptItem is one intake record. JSON field names match the stored
	// blob format exactly; changing them requires an external migration.
	ReceiptItem struct {
		ID        string        `json:"id"`
		Type      ReceiptType   `json:"type"`
		Date      string        `json:"date"` // YYYY-MM-DD, user-supplied intake date
		Customer  string        `json:"customer"`
		Issue     string        `json:"issue"`
		Qty       int           `json:"qty"`
		Etc       string        `json:"etc"`
		Status    ReceiptStatus `json:"status"`
		DoneDate  string        `json:"doneDate"` // set when a completed-class status is reached
		DevPeriod string        `json:"devPeriod,omitempty"`
		DevCost   string        `json:"devCost,omitempty"`
		DevDue    string        `json:"devDue,omitempty"`
		CreatedAt int64         `json:"createdAt"` // unix millis, ordering only
	}

	// Draft carries the user-editable fields of a receipt. ID, CreatedAt,
	// Status and DoneDate are owned by the register and never come from a draft.
	Draft struct {
		Type      ReceiptType `json:"type"`
		Date      string      `json:"date"`
		Customer  string      `json:"customer"`
		Issue     string      `json:"issue"`
		Qty       int         `json:"qty"`
		Etc       string      `json:"etc"`
		DevPeriod string      `json:"devPeriod"`
		DevCost   string      `json:"devCost"`
		DevDue    string      `json:"devDue"`
	}
)

var (
	ErrEmptyCustomer = errors.New("empty customer")
	ErrEmptyIssue    = errors.New("empty issue")
	ErrInvalidType   = errors.New("invalid receipt type")
	ErrInvalidStatus = errors.New("invalid receipt status")
	ErrNotFound      = errors.New("receipt not found")
)

// completedStatuses is the explicit completed-class set. Membership here,
// not a label match, decides whether a status transition stamps DoneDate.
var completedStatuses = map[ReceiptStatus]struct{}{
	StatusRepairCompleted: {},
	StatusDevCompleted:    {},
}

func (t ReceiptType) Validate() error {
	switch t {
	case TypeRepair, TypeDev:
		return nil
	}
	return ErrInvalidType
}

func (s ReceiptStatus) Validate() error {
	switch s {
	case StatusReceived, StatusRepairCompleted, StatusRepairFailed, StatusExchanged, StatusDevCompleted:
		return nil
	}
	return ErrInvalidStatus
}

// IsCompleted reports whether the status belongs to the completed class.
func (s ReceiptStatus) IsCompleted() bool {
	_, ok := completedStatuses[s]
	return ok
}

func (d Draft) Validate() error {
	if err := d.Type.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(d.Customer) == "" {
		return ErrEmptyCustomer
	}
	if strings.TrimSpace(d.Issue) == "" {
		return ErrEmptyIssue
	}
	return nil
}

// Apply merges the draft's fields into the item, preserving ID, CreatedAt,
// Status and DoneDate.
func (d Draft) Apply(item ReceiptItem) ReceiptItem {
	item.Type = d.Type
	item.Date = d.Date
	item.Customer = d.Customer
	item.Issue = d.Issue
	item.Qty = d.Qty
	item.Etc = d.Etc
	item.DevPeriod = d.DevPeriod
	item.DevCost = d.DevCost
	item.DevDue = d.DevDue
	return item
}
