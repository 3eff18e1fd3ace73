package models

type Patient struct {
	Id           uint   `json:"id" gorm:"primaryKey"`
	MedicalRecNo string `json:"medical_rec_no" gorm:"not null;unique"`
	FirstName    string `json:"first_name" gorm:"not null"`
	LastName     string `json:"last_name" gorm:"not null"`
	Facility     string `json:"facility" gorm:"not null"`
	Address      string `json:"address" gorm:"null"`
	City         string `json:"city" gorm:"null"`
	Zip          string `json:"zip" gorm:"null"`
	PhoneNumber  string `json:"phone_number" gorm:"null"`
	Email        string `json:"email" gorm:"null"`
	Active       bool   `json:"-"`
}
