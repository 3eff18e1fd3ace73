package models

import (
	"time"

	"gorm.io/datatypes"
)

// Invoice is the billing document generated alongside a treatment.
// Derived money values persist at save time. Invariant enforced by the
// lifecycle code and a DB CHECK: payment_date is set iff status=closed
// (a reverted invoice keeps its historical date, so the CHECK guards
// one direction only: closed implies a date).
type Invoice struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	InvoiceNumber string    `json:"invoice_number" gorm:"unique"`
	TreatmentID   uint      `json:"-" gorm:"index"`
	Treatment     Treatment `json:"treatment" gorm:"foreignKey:TreatmentID;references:ID"`

	TotalBillable float64 `json:"total_billable" gorm:"type:numeric(12,2)"`
	InvoiceAmount float64 `json:"invoice_amount" gorm:"type:numeric(12,2)"`

	Status      string     `json:"status" gorm:"type:VARCHAR(20);default:'open'"`
	InvoiceDate time.Time  `json:"invoice_date"`
	DueDate     time.Time  `json:"due_date"`
	PaymentDate *time.Time `json:"payment_date"`

	Assignments []CommissionAssignment `json:"assignments" gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
}

// CommissionAssignment is one representative's stake in one invoice.
// Amounts are recomputed for the whole set whenever any assignment
// changes; a single row is never patched in isolation.
type CommissionAssignment struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	InvoiceID        uint           `json:"-" gorm:"index"`
	RepresentativeID uint           `json:"representative_id" gorm:"not null;index"`
	Representative   Representative `json:"-" gorm:"foreignKey:RepresentativeID;references:Id;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
	CommissionRate   float64        `json:"commission_rate"` // percentage, rate stays float
	CommissionAmount float64        `json:"commission_amount" gorm:"type:numeric(12,2)"`
}

// InvoiceStatusChange is an audit row for one lifecycle transition.
type InvoiceStatusChange struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	InvoiceID   uint           `json:"invoice_id" gorm:"index"`
	FromStatus  string         `json:"from_status" gorm:"type:VARCHAR(20)"`
	ToStatus    string         `json:"to_status" gorm:"type:VARCHAR(20)"`
	PaymentDate *time.Time     `json:"payment_date"`
	Snapshot    datatypes.JSON `json:"snapshot" gorm:"type:jsonb"`
	CreatedAt   time.Time      `json:"created_at"`
}
