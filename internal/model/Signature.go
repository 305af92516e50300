package model

import "time"

type Signature struct {
	BaseModel
	PetitionID string `gorm:"type:text;not null;index;uniqueIndex:idx_signatures_petition_email" json:"petition_id"`
	FullName   string `gorm:"type:text;not null" json:"full_name"`
	Email      string `gorm:"type:text;not null;uniqueIndex:idx_signatures_petition_email" json:"email"`
	Cpf        string `gorm:"type:text" json:"cpf"`
	Phone      string `gorm:"type:text" json:"phone"`
	City       string `gorm:"type:text" json:"city"`
	State      string `gorm:"type:text" json:"state"`

	// Stamped from the request by the handler, never trusted from the client.
	IpAddress string `gorm:"type:text" json:"ip_address"`
	UserAgent string `gorm:"type:text" json:"user_agent"`

	UtmSource   string `gorm:"type:text" json:"utm_source"`
	UtmMedium   string `gorm:"type:text" json:"utm_medium"`
	UtmCampaign string `gorm:"type:text" json:"utm_campaign"`

	TermsAccepted   bool       `gorm:"type:boolean;not null;default:true" json:"terms_accepted"`
	TermsAcceptedAt *time.Time `gorm:"type:timestamptz" json:"terms_accepted_at"`
	Verified        bool       `gorm:"type:boolean;not null;default:true" json:"verified"`
	Protocol        string     `gorm:"type:text" json:"protocol"`

	Petition Petition `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

func (s Signature) TableName() string {
	return "signatures"
}
