package models

import "time"

const (
	TreatmentActive    = "active"
	TreatmentCompleted = "completed"
	TreatmentCancelled = "cancelled"
)

// Treatment is one graft application recorded by a clinician. Updating
// its wound size or status never rewrites the amounts of an invoice
// already generated from it.
type Treatment struct {
	ID             uint         `json:"id" gorm:"primaryKey"`
	PatientID      uint         `json:"-" gorm:"index"`
	Patient        Patient      `json:"patient" gorm:"foreignKey:PatientID;references:Id"`
	GraftProductID string       `json:"graft_product_id" gorm:"not null;index"`
	GraftProduct   GraftProduct `json:"graft_product" gorm:"foreignKey:GraftProductID;references:Id;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
	WoundArea      float64      `json:"wound_area" gorm:"type:numeric(12,2)"`
	TreatmentDate  time.Time    `json:"treatment_date"`
	Status         string       `json:"status" gorm:"type:VARCHAR(20);default:'active'"`
	CreatedAt      time.Time    `json:"created_at"`
}
