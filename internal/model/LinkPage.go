package model

type LinkPage struct {
	BaseModel
	Slug            string `gorm:"type:text;uniqueIndex:idx_link_pages_slug,where:slug <> ''" json:"slug"`
	Title           string `gorm:"type:text;not null" json:"title"`
	Bio             string `gorm:"type:text" json:"bio"`
	AvatarURL       string `gorm:"type:text" json:"avatar_url"`
	BackgroundColor string `gorm:"type:text;not null;default:'#F8FAFC'" json:"background_color"`
	ButtonColor     string `gorm:"type:text;not null;default:'#3B82F6'" json:"button_color"`
	TextColor       string `gorm:"type:text;not null;default:'#0F172A'" json:"text_color"`
	ShowCounters    bool   `gorm:"type:boolean;not null;default:true" json:"show_counters"`

	Items []LinkPageItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}

func (lp LinkPage) TableName() string {
	return "link_pages"
}

type LinkPageItem struct {
	BaseModel
	LinkPageID  string `gorm:"type:text;not null;index" json:"link_page_id"`
	PetitionID  string `gorm:"type:text;not null" json:"petition_id"`
	CustomLabel string `gorm:"type:text" json:"custom_label"`
	Position    int    `gorm:"type:integer;not null;default:0" json:"position"`

	Petition Petition `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

func (lpi LinkPageItem) TableName() string {
	return "link_page_items"
}
