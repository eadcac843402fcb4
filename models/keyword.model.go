package models

import (
	"gorm.io/gorm"
)

type Keyword struct {
	gorm.Model
	Name string `gorm:"unique;not null" json:"name"`
}

func (Keyword) TableName() string {
	return "keywords"
}

// ThesisKeyword links a thesis to either a catalog keyword (keyword_id)
// or a free-text one (keyword_other); both kinds may coexist per thesis.
type ThesisKeyword struct {
	gorm.Model
	ThesisID     uint    `gorm:"index;not null" json:"thesisId"`
	KeywordID    *uint   `gorm:"index" json:"keywordId"`
	KeywordOther *string `json:"keywordOther"`

	Keyword *Keyword `gorm:"foreignKey:KeywordID" json:"keyword,omitempty"`
}

func (ThesisKeyword) TableName() string {
	return "thesis_keywords"
}
