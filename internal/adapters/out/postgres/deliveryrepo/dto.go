// Package deliveryrepo provides data transfer objects and mapping functions
// for delivery persistence. It covers the delivery aggregate, its quotes and
// the courier job audit records.
package deliveryrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO represents the database structure for persisting delivery aggregates.
// Indexed by order for latest-delivery lookups and by status for listings.
type DeliveryDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID `gorm:"type:uuid;index"`
	QuoteID      uuid.UUID `gorm:"type:uuid"`
	CourierJobID string
	Status       int `gorm:"index"`
	DriverName   string
	DriverPhone  string
	LastLocation string
	ETA          *time.Time `gorm:"column:eta"`
	PriceAmount  int64
	CancelReason string
	CreatedAt    time.Time `gorm:"index"`
}

// TableName specifies the database table name for delivery entities.
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// QuoteDTO represents the database structure for persisting delivery quotes.
type QuoteDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	PriceAmount int64
	ETAMinutes  int `gorm:"column:eta_minutes"`
	ExpiresAt   time.Time `gorm:"index"`
	Status      int       `gorm:"index"`
	CreatedAt   time.Time
}

// TableName specifies the database table name for quote entities.
func (QuoteDTO) TableName() string {
	return "quotes"
}

// JobRecordDTO represents the append-only courier job audit table.
type JobRecordDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	CourierJobID string    `gorm:"index"`
	Purpose      string
	RawResponse  string
	CreatedAt    time.Time
}

// TableName specifies the database table name for job records.
func (JobRecordDTO) TableName() string {
	return "job_records"
}

func fromDomain(del *delivery.Delivery) DeliveryDTO {
	return DeliveryDTO{
		ID:           del.ID().Bytes(),
		OrderID:      del.OrderID().Bytes(),
		QuoteID:      del.QuoteID().Bytes(),
		CourierJobID: del.CourierJobID(),
		Status:       int(del.Status()),
		DriverName:   del.DriverName(),
		DriverPhone:  del.DriverPhone(),
		LastLocation: del.LastLocation(),
		ETA:          del.ETA(),
		PriceAmount:  del.Price().Amount(),
		CancelReason: del.CancelReason(),
		CreatedAt:    del.CreatedAt(),
	}
}

func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	quoteID, err := kernel.UUIDFromBytes(dto.QuoteID[:])
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoney(dto.PriceAmount)
	if err != nil {
		return nil, err
	}

	return delivery.RestoreDelivery(
		id,
		orderID,
		quoteID,
		dto.CourierJobID,
		delivery.Status(dto.Status),
		dto.DriverName,
		dto.DriverPhone,
		dto.LastLocation,
		dto.ETA,
		price,
		dto.CancelReason,
		dto.CreatedAt,
	)
}

func quoteFromDomain(quote *delivery.Quote) QuoteDTO {
	return QuoteDTO{
		ID:          quote.ID().Bytes(),
		OrderID:     quote.OrderID().Bytes(),
		PriceAmount: quote.Price().Amount(),
		ETAMinutes:  quote.ETAMinutes(),
		ExpiresAt:   quote.ExpiresAt(),
		Status:      int(quote.Status()),
		CreatedAt:   quote.CreatedAt(),
	}
}

func quoteToDomain(dto QuoteDTO) (*delivery.Quote, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoney(dto.PriceAmount)
	if err != nil {
		return nil, err
	}

	return delivery.RestoreQuote(
		id,
		orderID,
		price,
		dto.ETAMinutes,
		dto.ExpiresAt,
		delivery.QuoteStatus(dto.Status),
		dto.CreatedAt,
	)
}

func jobRecordFromDomain(record *delivery.JobRecord) JobRecordDTO {
	return JobRecordDTO{
		ID:           record.ID().Bytes(),
		CourierJobID: record.CourierJobID(),
		Purpose:      record.Purpose(),
		RawResponse:  record.RawResponse(),
		CreatedAt:    record.CreatedAt(),
	}
}
