package models

import (
	"gorm.io/gorm"
)

type Student struct {
	gorm.Model
	Matricola         string `gorm:"unique;not null" json:"matricola"`
	FirstName         string `gorm:"not null" json:"firstName"`
	LastName          string `gorm:"not null" json:"lastName"`
	Email             string `gorm:"unique;not null" json:"email"`
	DegreeProgrammeID uint   `gorm:"index" json:"degreeProgrammeId"`

	DegreeProgramme DegreeProgramme `gorm:"foreignKey:DegreeProgrammeID" json:"degreeProgramme,omitempty"`
}

func (Student) TableName() string {
	return "students"
}

// DegreeProgramme carries the collegio code that drives the
// resume-required rule on conclusion submissions.
type DegreeProgramme struct {
	gorm.Model
	Code       string `gorm:"unique;not null" json:"code"`
	Name       string `gorm:"not null" json:"name"`
	IDCollegio string `gorm:"column:id_collegio;type:varchar(10)" json:"idCollegio"`
	Level      string `gorm:"type:varchar(10)" json:"level"` // MSC, BSC
}

func (DegreeProgramme) TableName() string {
	return "degree_programmes"
}
