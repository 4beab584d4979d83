// Package returnrepo provides data transfer objects and mapping functions for
// return persistence. It implements the repository pattern for the return
// aggregate and its refund records, handling the conversion between domain
// entities and database representations.
package returnrepo

import (
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/returns"

	"github.com/google/uuid"
)

// ReturnDTO represents the database structure for persisting return aggregates.
// Indexed by status for the listing queries and by order for lookups.
type ReturnDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID `gorm:"type:uuid;index"`
	CustomerID   uuid.UUID `gorm:"type:uuid;index"`
	Reason       string
	ItemIDs      string `gorm:"column:item_ids"`
	Comments     string
	RefundAmount int64
	Status       int `gorm:"index"`
	CourierJobID *string
	PickupAt     *time.Time
	RequestedAt  time.Time `gorm:"index"`
	ApprovedAt   *time.Time
	RejectedAt   *time.Time
	RejectReason string
	RefundedAt   *time.Time
}

// TableName specifies the database table name for return entities.
func (ReturnDTO) TableName() string {
	return "returns"
}

// RefundRecordDTO represents the database structure for refund records.
// Rows are append-only.
type RefundRecordDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	ReturnID         uuid.UUID `gorm:"type:uuid;index"`
	OrderID          uuid.UUID `gorm:"type:uuid"`
	Amount           int64
	ProviderRefundID string
	CreatedAt        time.Time
}

// TableName specifies the database table name for refund records.
func (RefundRecordDTO) TableName() string {
	return "refund_records"
}

// itemIDsSeparator joins the returned item identifiers into a single column.
// Item identifiers are platform SKU references and never contain commas.
const itemIDsSeparator = ","

func fromDomain(ret *returns.Return) ReturnDTO {
	return ReturnDTO{
		ID:           ret.ID().Bytes(),
		OrderID:      ret.OrderID().Bytes(),
		CustomerID:   ret.CustomerID().Bytes(),
		Reason:       ret.Reason(),
		ItemIDs:      strings.Join(ret.ItemIDs(), itemIDsSeparator),
		Comments:     ret.Comments(),
		RefundAmount: ret.Amount().Amount(),
		Status:       int(ret.Status()),
		CourierJobID: ret.CourierJobID(),
		PickupAt:     ret.PickupAt(),
		RequestedAt:  ret.RequestedAt(),
		ApprovedAt:   ret.ApprovedAt(),
		RejectedAt:   ret.RejectedAt(),
		RejectReason: ret.RejectReason(),
		RefundedAt:   ret.RefundedAt(),
	}
}

func toDomain(dto ReturnDTO) (*returns.Return, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	amount, err := kernel.NewMoney(dto.RefundAmount)
	if err != nil {
		return nil, err
	}

	var itemIDs []string
	if dto.ItemIDs != "" {
		itemIDs = strings.Split(dto.ItemIDs, itemIDsSeparator)
	}

	return returns.RestoreReturn(
		id,
		orderID,
		customerID,
		dto.Reason,
		itemIDs,
		dto.Comments,
		amount,
		returns.Status(dto.Status),
		dto.CourierJobID,
		dto.PickupAt,
		dto.RequestedAt,
		dto.ApprovedAt,
		dto.RejectedAt,
		dto.RejectReason,
		dto.RefundedAt,
	)
}

func refundRecordFromDomain(record *returns.RefundRecord) RefundRecordDTO {
	return RefundRecordDTO{
		ID:               record.ID().Bytes(),
		ReturnID:         record.ReturnID().Bytes(),
		OrderID:          record.OrderID().Bytes(),
		Amount:           record.Amount().Amount(),
		ProviderRefundID: record.ProviderRefundID(),
		CreatedAt:        record.CreatedAt(),
	}
}
