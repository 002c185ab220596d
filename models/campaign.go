package models

import "time"

// CampaignStatus is the lifecycle state of a marketing campaign.
type CampaignStatus string

const (
	CampaignDraft     CampaignStatus = "Borrador"
	CampaignScheduled CampaignStatus = "Programada"
	CampaignSent      CampaignStatus = "Enviada"
)

// Campaign is an email campaign built from a layout. Sending is out of
// scope; Recipients and the rate fields only carry reporting data.
type Campaign struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Status     CampaignStatus `json:"status"`
	Recipients int            `json:"recipients"`
	OpenRate   string         `json:"open_rate,omitempty"`
	ClickRate  string         `json:"click_rate,omitempty"`
	Layout     []Element      `json:"layout,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}
