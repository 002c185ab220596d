package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"

	"camacero/api-gateway/models"
)

// Supabase implements Store against the remote data service. Calls follow
// the postgrest select/insert/update/delete builders; every response body
// is unmarshalled into a slice even for single-record lookups.
type Supabase struct {
	client *supa.Client
}

// NewSupabase wraps an initialized Supabase client.
func NewSupabase(client *supa.Client) *Supabase {
	return &Supabase{client: client}
}

func decodeRows[T any](body []byte) ([]T, error) {
	var rows []T
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("could not process response: %w", err)
	}
	return rows, nil
}

func firstRow[T any](body []byte) (*T, error) {
	rows, err := decodeRows[T](body)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

func (s *Supabase) ListCompanies(ctx context.Context) ([]models.Company, error) {
	body, _, err := s.client.From("companies").
		Select("*", "", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, err
	}
	return decodeRows[models.Company](body)
}

func (s *Supabase) GetCompany(ctx context.Context, id string) (*models.Company, error) {
	body, _, err := s.client.From("companies").
		Select("*", "", false).
		Eq("id", id).
		Execute()
	if err != nil {
		return nil, err
	}
	return firstRow[models.Company](body)
}

func (s *Supabase) GetCompanyByEmail(ctx context.Context, email string) (*models.Company, error) {
	body, _, err := s.client.From("companies").
		Select("*", "", false).
		Eq("email", email).
		Execute()
	if err != nil {
		return nil, err
	}
	return firstRow[models.Company](body)
}

func (s *Supabase) CreateCompany(ctx context.Context, company models.Company) (*models.Company, error) {
	now := time.Now()
	company.CreatedAt = now
	company.UpdatedAt = now
	body, _, err := s.client.From("companies").
		Insert(company, false, "", "representation", "").
		Execute()
	if err != nil {
		return nil, err
	}
	return firstRow[models.Company](body)
}

func (s *Supabase) UpdateCompany(ctx context.Context, id string, patch map[string]interface{}) (*models.Company, error) {
	patch["updated_at"] = time.Now()
	body, _, err := s.client.From("companies").
		Update(patch, "representation", "").
		Eq("id", id).
		Execute()
	if err != nil {
		return nil, err
	}
	return firstRow[models.Company](body)
}

func (s *Supabase) DeleteCompany(ctx context.Context, id string) error {
	_, _, err := s.client.From("companies").
		Delete("", "").
		Eq("id", id).
		Execute()
	return err
}

func (s *Supabase) GetSuperAdminByEmail(ctx context.Context, email string) (*models.SuperAdmin, error) {
	body, _, err := s.client.From("super_admins").
		Select("*", "", false).
		Eq("email", email).
		Execute()
	if err != nil {
		return nil, err
	}
	return firstRow[models.SuperAdmin](body)
}

func (s *Supabase) ListProducts(ctx context.Context, companyID string) ([]models.Product, error) {
	query := s.client.From("products").
		Select("*", "", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: false})
	if companyID != "" {
		query = query.Eq("company_id", companyID)
	}
	body, _, err := query.Execute()
	if err != nil {
		return nil, err
	}
	return decodeRows[models.Product](body)
}

func (s *Supabase) CreateProduct(ctx context.Context, product models.Product) (*models.Product, error) {
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	body, _, err := s.client.From("products").
		Insert(product, false, "", "representation", "").
		Execute()
	if err != nil {
		return nil, err
	}
	return firstRow[models.Product](body)
}

func (s *Supabase) UpdateProduct(ctx context.Context, id string, patch map[string]interface{}) (*models.Product, error) {
	patch["updated_at"] = time.Now()
	body, _, err := s.client.From("products").
		Update(patch, "representation", "").
		Eq("id", id).
		Execute()
	if err != nil {
		return nil, err
	}
	return firstRow[models.Product](body)
}

func (s *Supabase) DeleteProduct(ctx context.Context, id string) error {
	_, _, err := s.client.From("products").
		Delete("", "").
		Eq("id", id).
		Execute()
	return err
}

func (s *Supabase) ListArticles(ctx context.Context) ([]models.Article, error) {
	body, _, err := s.client.From("articles").
		Select("*", "", false).
		Order("published_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, err
	}
	return decodeRows[models.Article](body)
}

func (s *Supabase) GetArticle(ctx context.Context, id string) (*models.Article, error) {
	body, _, err := s.client.From("articles").
		Select("*", "", false).
		Eq("id", id).
		Execute()
	if err != nil {
		return nil, err
	}
	return firstRow[models.Article](body)
}

func (s *Supabase) ListTemplates(ctx context.Context) ([]models.Template, error) {
	body, _, err := s.client.From("email_templates").
		Select("*", "", false).
		Order("updated_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, err
	}
	return decodeRows[models.Template](body)
}

func (s *Supabase) GetTemplate(ctx context.Context, id string) (*models.Template, error) {
	body, _, err := s.client.From("email_templates").
		Select("*", "", false).
		Eq("id", id).
		Execute()
	if err != nil {
		return nil, err
	}
	return firstRow[models.Template](body)
}

func (s *Supabase) SaveTemplate(ctx context.Context, template models.Template) (*models.Template, error) {
	now := time.Now()
	if template.ID == "" {
		template.ID = "template-" + uuid.NewString()
		template.CreatedAt = now
	}
	template.UpdatedAt = now
	body, _, err := s.client.From("email_templates").
		Insert(template, true, "id", "representation", "").
		Execute()
	if err != nil {
		return nil, err
	}
	return firstRow[models.Template](body)
}

func (s *Supabase) DeleteTemplate(ctx context.Context, id string) error {
	_, _, err := s.client.From("email_templates").
		Delete("", "").
		Eq("id", id).
		Execute()
	return err
}

func (s *Supabase) ListCampaigns(ctx context.Context) ([]models.Campaign, error) {
	body, _, err := s.client.From("campaigns").
		Select("*", "", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, err
	}
	return decodeRows[models.Campaign](body)
}

func (s *Supabase) CreateCampaign(ctx context.Context, campaign models.Campaign) (*models.Campaign, error) {
	now := time.Now()
	campaign.CreatedAt = now
	campaign.UpdatedAt = now
	body, _, err := s.client.From("campaigns").
		Insert(campaign, false, "", "representation", "").
		Execute()
	if err != nil {
		return nil, err
	}
	return firstRow[models.Campaign](body)
}

func (s *Supabase) GetUserSettings(ctx context.Context, companyID string) (map[string]json.RawMessage, error) {
	body, _, err := s.client.From("user_settings").
		Select("*", "", false).
		Eq("company_id", companyID).
		Execute()
	if err != nil {
		return nil, err
	}
	rows, err := decodeRows[models.UserSetting](body)
	if err != nil {
		return nil, err
	}
	settings := make(map[string]json.RawMessage, len(rows))
	for _, row := range rows {
		settings[row.Key] = row.Value
	}
	return settings, nil
}

func (s *Supabase) SaveUserSetting(ctx context.Context, companyID, key string, value json.RawMessage) error {
	row := models.UserSetting{
		CompanyID: companyID,
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	_, _, err := s.client.From("user_settings").
		Insert(row, true, "company_id,settings_key", "representation", "").
		Execute()
	return err
}
