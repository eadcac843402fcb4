package models

import (
	"gorm.io/gorm"
)

type Teacher struct {
	gorm.Model
	Matricola  string `gorm:"unique;not null" json:"matricola"`
	FirstName  string `gorm:"not null" json:"firstName"`
	LastName   string `gorm:"not null" json:"lastName"`
	Email      string `gorm:"unique;not null" json:"email"`
	Department string `json:"department"`
	IsExternal bool   `gorm:"default:false" json:"isExternal"`
}

func (Teacher) TableName() string {
	return "teachers"
}
