package models

// Representative is a sales rep eligible for commission assignments.
type Representative struct {
	Id           uint   `json:"id" gorm:"primaryKey"`
	FirstName    string `json:"first_name" gorm:"not null"`
	LastName     string `json:"last_name" gorm:"not null"`
	Email        string `json:"email" gorm:"unique;not null"`
	PhoneNumber  string `json:"phone_number" gorm:"null"`
	MobileNumber string `json:"mobile_number" gorm:"null"`
	Territory    string `json:"territory" gorm:"null"`
	Active       bool   `json:"-"`
}

func (rep *Representative) FullName() string {
	return rep.FirstName + " " + rep.LastName
}
