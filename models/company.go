package models

import "time"

// Contact is the directory-facing contact block of a company.
type Contact struct {
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email"`
	Address string `json:"address,omitempty"`
}

// Socials holds the company's social handles.
type Socials struct {
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	X         string `json:"x,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
}

// MapCoords locates the company on the public map.
type MapCoords struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Company represents a row of the companies table. Name, Category, Size
// and a valid contact email are mandatory before a profile may be saved.
type Company struct {
	ID             string     `json:"id,omitempty"`
	Email          string     `json:"email"`
	Name           string     `json:"name"`
	Description    *string    `json:"description,omitempty"` // Use a pointer for nullable TEXT fields
	Role           Role       `json:"role"`
	Plan           string     `json:"plan"`
	Status         string     `json:"status"`
	Permissions    []string   `json:"permissions"`
	Category       string     `json:"category"`
	Size           string     `json:"size"`
	FoundedYear    int        `json:"founded_year,omitempty"`
	Employees      int        `json:"employees,omitempty"`
	Certifications []string   `json:"certifications,omitempty"`
	Website        string     `json:"website,omitempty"`
	Logo           string     `json:"logo,omitempty"`
	Gallery        []string   `json:"gallery,omitempty"`
	FeaturedVideo  *string    `json:"featured_video,omitempty"`
	Socials        Socials    `json:"socials"`
	Contact        Contact    `json:"contact"`
	MapCoords      *MapCoords `json:"map_coords,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Password is the flat demo credential of the fallback roster. It is
	// never serialized and the remote table carries no such column.
	Password string `json:"-"`
}

// StatusActive is the only account status allowed to authenticate.
const StatusActive = "Activo"

// Principal normalizes the company row into the session record.
func (c *Company) Principal() *Principal {
	p := &Principal{
		ID:          c.ID,
		Email:       c.Email,
		Name:        c.Name,
		Role:        c.Role,
		Plan:        c.Plan,
		Status:      c.Status,
		Permissions: append([]string(nil), c.Permissions...),
		Socials:     &c.Socials,
		Contact:     &c.Contact,
		LoginTime:   time.Now(),
	}
	if c.Website != "" {
		p.Website = &c.Website
	}
	if c.Logo != "" {
		p.Logo = &c.Logo
	}
	if c.Category != "" {
		p.Category = &c.Category
	}
	if c.Size != "" {
		p.Size = &c.Size
	}
	if c.Employees > 0 {
		employees := c.Employees
		p.Employees = &employees
	}
	if c.FoundedYear > 0 {
		founded := c.FoundedYear
		p.FoundedYear = &founded
	}
	return p
}

// Product is a service or product listed on a company profile.
type Product struct {
	ID          string    `json:"id,omitempty"`
	CompanyID   string    `json:"company_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
