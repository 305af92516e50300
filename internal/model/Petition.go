package model

import (
	"time"

	"github.com/mobiliza/peticoes/internal/constant"
)

type Petition struct {
	BaseModel
	Title        string                  `gorm:"type:text;not null" json:"title"`
	Slug         string                  `gorm:"type:text;uniqueIndex:idx_petitions_slug,where:slug <> ''" json:"slug"`
	Summary      string                  `gorm:"type:text" json:"summary"`
	Description  string                  `gorm:"type:text;not null" json:"description"`
	ImageURL     string                  `gorm:"type:text" json:"image_url"`
	LogoURL      string                  `gorm:"type:text" json:"logo_url"`
	Goal         int                     `gorm:"type:integer;not null" json:"goal"`
	Deadline     *time.Time              `gorm:"type:date" json:"deadline"`
	Status       constant.PetitionStatus `gorm:"type:text;not null;default:draft" json:"status"`
	RequireCpf   bool                    `gorm:"type:boolean;not null;default:false" json:"require_cpf"`
	RequirePhone bool                    `gorm:"type:boolean;not null;default:false" json:"require_phone"`
	PrimaryColor string                  `gorm:"type:text;not null;default:'#3B82F6'" json:"primary_color"`
	TermsText    string                  `gorm:"type:text" json:"terms_text"`

	Signatures []Signature `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

func (p Petition) TableName() string {
	return "petitions"
}

// A published petition must be reachable at a public url, which requires a slug.
func (p Petition) PublishableWithSlug() bool {
	return p.Status != constant.PetitionStatusPublished || p.Slug != ""
}
