package models

import "time"

// Property is a commercial space listable for monthly rental.
// The booking engine reads OwnerID and MonthlyPrice; it never mutates
// property records.
type Property struct {
	ID           string    `bson:"id" json:"id"`
	OwnerID      string    `bson:"owner_id" json:"owner_id"`
	Title        string    `bson:"title" json:"title"`
	Description  string    `bson:"description,omitempty" json:"description,omitempty"`
	Address      string    `bson:"address" json:"address"`
	MonthlyPrice float64   `bson:"monthly_price" json:"monthly_price"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}
