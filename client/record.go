package client

import (
	"encoding/json"
	"time"

	"spendbook/models"
)

// Input is the body of a create request.
type Input struct {
	Title    string  `json:"title"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	// Date is sent as YYYY-MM-DD or RFC 3339
	Date string `json:"date"`
}

// Patch is the body of an update request. Nil fields are omitted.
type Patch struct {
	Title    *string  `json:"title,omitempty"`
	Amount   *float64 `json:"amount,omitempty"`
	Category *string  `json:"category,omitempty"`
	Date     *string  `json:"date,omitempty"`
}

// PatchFromInput turns a full form into a patch touching every field.
func PatchFromInput(in Input) Patch {
	return Patch{Title: &in.Title, Amount: &in.Amount, Category: &in.Category, Date: &in.Date}
}

// record accepts either id or a raw _id from the wire.
type record struct {
	ID        string    `json:"id"`
	RawID     rawID     `json:"_id"`
	Title     string    `json:"title"`
	Amount    float64   `json:"amount"`
	Category  string    `json:"category"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// rawID is a string or an extended JSON {"$oid": "..."}.
type rawID string

func (r *rawID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*r = rawID(s)
		return nil
	}
	var oid struct {
		OID string `json:"$oid"`
	}
	if err := json.Unmarshal(data, &oid); err != nil {
		return err
	}
	*r = rawID(oid.OID)
	return nil
}

func (r record) expense() models.Expense {
	id := r.ID
	if id == "" {
		id = string(r.RawID)
	}
	return models.Expense{
		ID:        id,
		Title:     r.Title,
		Amount:    r.Amount,
		Category:  r.Category,
		Date:      r.Date.UTC(),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
