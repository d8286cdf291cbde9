package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BillboardStatus string

const (
	BillboardStatusAvailable   BillboardStatus = "available"
	BillboardStatusRented      BillboardStatus = "rented"
	BillboardStatusMaintenance BillboardStatus = "maintenance"
)

type Billboard struct {
	ID           uuid.UUID
	Code         string
	Name         string
	Municipality string
	Size         string // normalized, e.g. "4x12"
	Level        string
	Faces        int
	Type         string
	Status       BillboardStatus
	MonthlyPrice decimal.Decimal
	ContractID   *uuid.UUID
	RentEndDate  *time.Time
}

// Linked reports whether the billboard currently points at a contract.
func (b Billboard) Linked() bool {
	return b.ContractID != nil && *b.ContractID != uuid.Nil
}
