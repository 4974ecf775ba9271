// Package repository persists the delivery journal.
package repository

import (
	"context"
	"errors"

	"github.com/telhawk-systems/hivebridge/internal/models"
)

// ErrDeliveryNotFound is returned when a delivery record does not exist.
var ErrDeliveryNotFound = errors.New("delivery not found")

// Repository defines the delivery journal interface.
type Repository interface {
	// RecordDelivery journals one delivery attempt, sent or failed.
	RecordDelivery(ctx context.Context, rec *models.DeliveryRecord) error

	// ListDeliveries retrieves a paginated, filtered journal page plus the
	// total count.
	ListDeliveries(ctx context.Context, req *models.ListDeliveriesRequest) ([]*models.DeliveryRecord, int, error)

	// Close releases the underlying connections.
	Close() error
}
