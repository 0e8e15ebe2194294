package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"store_manager/internal/apperrors"
	"store_manager/internal/logger"
	"store_manager/internal/models"
	"store_manager/pkg/events"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func newID(prefix string) string {
	return prefix + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func newOrderID(now time.Time) string {
	return newID(fmt.Sprintf("ORD-%d-", now.Year()))
}

// translateWriteError turns constraint violations the pre-checks could not
// see (concurrent writers) into validation errors.
func translateWriteError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.FieldError("non_field_errors", "A record with the same unique value already exists.")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperrors.FieldError("non_field_errors", "A referenced record does not exist.")
	}
	return err
}

func alreadyExists(what, field string) string {
	return fmt.Sprintf("%s with this %s already exists.", what, field)
}

func invalidPK(id string) string {
	return fmt.Sprintf("Invalid pk %q - object does not exist.", id)
}

// publishOrderEvent is fire-and-forget: a broker failure never fails the
// write that already committed.
func publishOrderEvent(ctx context.Context, publisher events.Publisher, log *logger.Logger, eventType string, order *models.Order, at time.Time) {
	event := events.OrderEvent{
		Type:          eventType,
		OrderID:       order.ID,
		CustomerID:    order.CustomerID,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
		TotalAmount:   order.TotalAmount,
		OccurredAt:    at.UTC(),
	}
	if err := publisher.Publish(ctx, event); err != nil {
		log.Warn("failed to publish order event", "type", eventType, "order_id", order.ID, "error", err)
	}
}
