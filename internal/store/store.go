package store

import (
	"context"
	"encoding/json"
	"errors"

	"camacero/api-gateway/models"
)

// ErrNotFound is returned when a record does not exist in the backing
// dataset.
var ErrNotFound = errors.New("record not found")

// Store is the single repository surface of the gateway. Three
// implementations exist: Supabase (remote), Memory (seeded fallback) and
// Fallback (remote-first decorator over both). Which one serves the app is
// decided once at startup.
type Store interface {
	// Companies
	ListCompanies(ctx context.Context) ([]models.Company, error)
	GetCompany(ctx context.Context, id string) (*models.Company, error)
	GetCompanyByEmail(ctx context.Context, email string) (*models.Company, error)
	CreateCompany(ctx context.Context, company models.Company) (*models.Company, error)
	// UpdateCompany merges the patch into the existing record and
	// refreshes updated_at. Last writer wins; there is no concurrency
	// token.
	UpdateCompany(ctx context.Context, id string, patch map[string]interface{}) (*models.Company, error)
	DeleteCompany(ctx context.Context, id string) error

	// Super admins
	GetSuperAdminByEmail(ctx context.Context, email string) (*models.SuperAdmin, error)

	// Products
	ListProducts(ctx context.Context, companyID string) ([]models.Product, error)
	CreateProduct(ctx context.Context, product models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, patch map[string]interface{}) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	// Articles
	ListArticles(ctx context.Context) ([]models.Article, error)
	GetArticle(ctx context.Context, id string) (*models.Article, error)

	// Templates
	ListTemplates(ctx context.Context) ([]models.Template, error)
	GetTemplate(ctx context.Context, id string) (*models.Template, error)
	// SaveTemplate inserts a new record or overwrites the one with the
	// same id.
	SaveTemplate(ctx context.Context, template models.Template) (*models.Template, error)
	DeleteTemplate(ctx context.Context, id string) error

	// Campaigns
	ListCampaigns(ctx context.Context) ([]models.Campaign, error)
	CreateCampaign(ctx context.Context, campaign models.Campaign) (*models.Campaign, error)

	// Per-company settings
	GetUserSettings(ctx context.Context, companyID string) (map[string]json.RawMessage, error)
	SaveUserSetting(ctx context.Context, companyID, key string, value json.RawMessage) error
}
