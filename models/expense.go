package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Expense expense record as stored and as served to clients
type Expense struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36" example:"6f1c2a7e-3b7d-4c55-9d0e-8a4f3e2b1c0d"`
	Title     string    `json:"title" gorm:"size:100;not null" example:"Coffee"`
	Amount    float64   `json:"amount" gorm:"not null" example:"4.5"`
	Category  string    `json:"category" gorm:"size:50;not null;index" example:"Food"`
	Date      time.Time `json:"date" gorm:"not null;index" example:"2024-01-15T00:00:00Z"`
	Version   uint      `json:"-" gorm:"not null;default:1"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName sets the table name
func (Expense) TableName() string {
	return "expenses"
}

// BeforeCreate assigns the opaque identifier and the first version.
func (e *Expense) BeforeCreate(*gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Version == 0 {
		e.Version = 1
	}
	return nil
}

// AfterFind normalizes times read back from drivers that attach a local zone.
func (e *Expense) AfterFind(*gorm.DB) error {
	e.Date = e.Date.UTC()
	e.CreatedAt = e.CreatedAt.UTC()
	e.UpdatedAt = e.UpdatedAt.UTC()
	return nil
}

// Apply overwrites the client-editable fields.
func (e *Expense) Apply(f ExpenseFields) {
	e.Title = f.Title
	e.Amount = f.Amount
	e.Category = f.Category
	e.Date = f.Date
}

// Fields returns the client-editable fields of the record.
func (e *Expense) Fields() ExpenseFields {
	return ExpenseFields{
		Title:    e.Title,
		Amount:   e.Amount,
		Category: e.Category,
		Date:     e.Date,
	}
}
