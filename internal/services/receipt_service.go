package services

import (
	"context"
	"fmt"
	"log/slog"

	"jeopsu/internal/amqp"
	"jeopsu/internal/core"
	"jeopsu/internal/register"
)

// EventPublisher publishes receipt change notifications. Satisfied by
// *amqp.Client; nil disables publication entirely.
type EventPublisher interface {
	PublishReceiptEvent(ctx context.Context, receiptID, action string, version int64) error
}

// ReceiptService orchestrates register mutations and change-event
// publication. The local write always comes first; a publish failure is
// logged and never fails the request.
type ReceiptService struct {
	register *register.Store
	events   EventPublisher
	closer   func() error
}

func NewReceiptService(reg *register.Store, events EventPublisher) *ReceiptService {
	return &ReceiptService{register: reg, events: events}
}

// SetCloser registers a cleanup function invoked by Close (storage backend,
// AMQP connection).
func (s *ReceiptService) SetCloser(fn func() error) {
	s.closer = fn
}

func (s *ReceiptService) Create(ctx context.Context, draft core.Draft) (core.ReceiptItem, error) {
	item, err := s.register.Create(ctx, draft)
	if err != nil {
		return core.ReceiptItem{}, fmt.Errorf("create receipt: %w", err)
	}
	s.publish(ctx, item.ID, amqp.ActionCreated)
	return item, nil
}

func (s *ReceiptService) Update(ctx context.Context, id string, draft core.Draft) (core.ReceiptItem, error) {
	item, err := s.register.Update(ctx, id, draft)
	if err != nil {
		return core.ReceiptItem{}, fmt.Errorf("update receipt: %w", err)
	}
	s.publish(ctx, id, amqp.ActionUpdated)
	return item, nil
}

func (s *ReceiptService) Delete(ctx context.Context, id string) error {
	if err := s.register.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete receipt: %w", err)
	}
	s.publish(ctx, id, amqp.ActionDeleted)
	return nil
}

func (s *ReceiptService) SetStatus(ctx context.Context, id string, status core.ReceiptStatus) (core.ReceiptItem, error) {
	item, err := s.register.SetStatus(ctx, id, status)
	if err != nil {
		return core.ReceiptItem{}, fmt.Errorf("set receipt status: %w", err)
	}
	s.publish(ctx, id, amqp.ActionStatusChanged)
	return item, nil
}

// List returns the current collection, optionally narrowed by type.
func (s *ReceiptService) List(t core.ReceiptType) []core.ReceiptItem {
	return core.FilterByType(s.register.Snapshot(), t)
}

// Summary derives the monthly/yearly/status aggregates from the current
// collection.
func (s *ReceiptService) Summary() core.Summary {
	return core.Summarize(s.register.Snapshot())
}

func (s *ReceiptService) Snapshot() []core.ReceiptItem {
	return s.register.Snapshot()
}

func (s *ReceiptService) Count() int {
	return s.register.Len()
}

func (s *ReceiptService) Version() int64 {
	return s.register.Version()
}

func (s *ReceiptService) publish(ctx context.Context, id, action string) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishReceiptEvent(ctx, id, action, s.register.Version()); err != nil {
		slog.ErrorContext(ctx, "Failed to publish receipt event",
			"receipt_id", id,
			"action", action,
			"error", err)
	}
}

func (s *ReceiptService) Close() error {
	if s.closer != nil {
		return s.closer()
	}
	return nil
}
