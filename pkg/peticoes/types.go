package peticoes

import "time"

type Petition struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	Summary      string     `json:"summary"`
	Description  string     `json:"description"`
	ImageURL     string     `json:"image_url"`
	LogoURL      string     `json:"logo_url"`
	Goal         int        `json:"goal"`
	Deadline     *time.Time `json:"deadline"`
	Status       string     `json:"status"`
	RequireCpf   bool       `json:"require_cpf"`
	RequirePhone bool       `json:"require_phone"`
	PrimaryColor string     `json:"primary_color"`
	TermsText    string     `json:"terms_text"`
	CreatedDate  *time.Time `json:"created_date"`
	UpdatedDate  *time.Time `json:"updated_date"`
}

type PetitionRequest struct {
	Title        string  `json:"title,omitempty"`
	Slug         *string `json:"slug,omitempty"`
	Summary      *string `json:"summary,omitempty"`
	Description  string  `json:"description,omitempty"`
	ImageURL     *string `json:"image_url,omitempty"`
	LogoURL      *string `json:"logo_url,omitempty"`
	Goal         int     `json:"goal,omitempty"`
	Deadline     *string `json:"deadline,omitempty"`
	Status       *string `json:"status,omitempty"`
	RequireCpf   *bool   `json:"require_cpf,omitempty"`
	RequirePhone *bool   `json:"require_phone,omitempty"`
	PrimaryColor *string `json:"primary_color,omitempty"`
	TermsText    *string `json:"terms_text,omitempty"`
}

type Signature struct {
	ID              string     `json:"id"`
	PetitionID      string     `json:"petition_id"`
	FullName        string     `json:"full_name"`
	Email           string     `json:"email"`
	Cpf             string     `json:"cpf"`
	Phone           string     `json:"phone"`
	City            string     `json:"city"`
	State           string     `json:"state"`
	IpAddress       string     `json:"ip_address"`
	UserAgent       string     `json:"user_agent"`
	UtmSource       string     `json:"utm_source"`
	UtmMedium       string     `json:"utm_medium"`
	UtmCampaign     string     `json:"utm_campaign"`
	TermsAccepted   bool       `json:"terms_accepted"`
	TermsAcceptedAt *time.Time `json:"terms_accepted_at"`
	Verified        bool       `json:"verified"`
	Protocol        string     `json:"protocol"`
	CreatedDate     *time.Time `json:"created_date"`
}

type SignatureRequest struct {
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	Cpf           string `json:"cpf,omitempty"`
	Phone         string `json:"phone,omitempty"`
	City          string `json:"city,omitempty"`
	State         string `json:"state,omitempty"`
	UtmSource     string `json:"utm_source,omitempty"`
	UtmMedium     string `json:"utm_medium,omitempty"`
	UtmCampaign   string `json:"utm_campaign,omitempty"`
	TermsAccepted *bool  `json:"terms_accepted,omitempty"`
}

type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type PetitionStats struct {
	Total int64        `json:"total"`
	Today int64        `json:"today"`
	ByDay []DailyCount `json:"by_day"`
}

type SignaturePage struct {
	Items     []Signature `json:"items"`
	Page      uint        `json:"page"`
	PageSize  uint        `json:"page_size"`
	Total     int64       `json:"total"`
	TotalPage int         `json:"total_page"`
}

type LinkPageItem struct {
	ID          string `json:"id"`
	LinkPageID  string `json:"link_page_id"`
	PetitionID  string `json:"petition_id"`
	CustomLabel string `json:"custom_label"`
	Position    int    `json:"position"`
}

type LinkPage struct {
	ID              string         `json:"id"`
	Slug            string         `json:"slug"`
	Title           string         `json:"title"`
	Bio             string         `json:"bio"`
	AvatarURL       string         `json:"avatar_url"`
	BackgroundColor string         `json:"background_color"`
	ButtonColor     string         `json:"button_color"`
	TextColor       string         `json:"text_color"`
	ShowCounters    bool           `json:"show_counters"`
	Items           []LinkPageItem `json:"items"`
	CreatedDate     *time.Time     `json:"created_date"`
}

type LinkPageItemRequest struct {
	PetitionID  string `json:"petition_id"`
	CustomLabel string `json:"custom_label,omitempty"`
}

type LinkPageRequest struct {
	Slug            *string               `json:"slug,omitempty"`
	Title           string                `json:"title,omitempty"`
	Bio             *string               `json:"bio,omitempty"`
	AvatarURL       *string               `json:"avatar_url,omitempty"`
	BackgroundColor *string               `json:"background_color,omitempty"`
	ButtonColor     *string               `json:"button_color,omitempty"`
	TextColor       *string               `json:"text_color,omitempty"`
	ShowCounters    *bool                 `json:"show_counters,omitempty"`
	Items           []LinkPageItemRequest `json:"items,omitempty"`
}
