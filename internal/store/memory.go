package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"camacero/api-gateway/models"
)

// Memory is the in-memory implementation of Store, seeded with the demo
// dataset. It serves two purposes: the fallback target when Supabase is
// unreachable, and the whole data layer when Supabase is not configured.
type Memory struct {
	mu         sync.RWMutex
	companies  []models.Company
	superAdmin models.SuperAdmin
	products   []models.Product
	articles   []models.Article
	templates  []models.Template
	campaigns  []models.Campaign
	settings   map[string]map[string]json.RawMessage // companyID -> key -> value
}

// NewMemory builds a Memory store populated with the fallback roster and
// sample directory content.
func NewMemory() *Memory {
	return &Memory{
		companies:  seedCompanies(),
		superAdmin: seedSuperAdmin(),
		products:   seedProducts(),
		articles:   seedArticles(),
		campaigns:  seedCampaigns(),
		settings:   make(map[string]map[string]json.RawMessage),
	}
}

func (m *Memory) ListCompanies(ctx context.Context) ([]models.Company, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Company, len(m.companies))
	copy(out, m.companies)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) GetCompany(ctx context.Context, id string) (*models.Company, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.companies {
		if m.companies[i].ID == id {
			company := m.companies[i]
			return &company, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) GetCompanyByEmail(ctx context.Context, email string) (*models.Company, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.companies {
		if m.companies[i].Email == email {
			company := m.companies[i]
			return &company, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) CreateCompany(ctx context.Context, company models.Company) (*models.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if company.ID == "" {
		company.ID = uuid.NewString()
	}
	now := time.Now()
	company.CreatedAt = now
	company.UpdatedAt = now
	m.companies = append(m.companies, company)
	created := company
	return &created, nil
}

func (m *Memory) UpdateCompany(ctx context.Context, id string, patch map[string]interface{}) (*models.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.companies {
		if m.companies[i].ID != id {
			continue
		}
		if err := applyCompanyPatch(&m.companies[i], patch); err != nil {
			return nil, err
		}
		m.companies[i].UpdatedAt = time.Now()
		updated := m.companies[i]
		return &updated, nil
	}
	return nil, ErrNotFound
}

func (m *Memory) DeleteCompany(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.companies {
		if m.companies[i].ID == id {
			m.companies = append(m.companies[:i], m.companies[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) GetSuperAdminByEmail(ctx context.Context, email string) (*models.SuperAdmin, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.superAdmin.Email != email {
		return nil, ErrNotFound
	}
	admin := m.superAdmin
	return &admin, nil
}

func (m *Memory) ListProducts(ctx context.Context, companyID string) ([]models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Product
	for _, p := range m.products {
		if companyID == "" || p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *Memory) CreateProduct(ctx context.Context, product models.Product) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	m.products = append(m.products, product)
	created := product
	return &created, nil
}

func (m *Memory) UpdateProduct(ctx context.Context, id string, patch map[string]interface{}) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.products {
		if m.products[i].ID != id {
			continue
		}
		if err := applyProductPatch(&m.products[i], patch); err != nil {
			return nil, err
		}
		m.products[i].UpdatedAt = time.Now()
		updated := m.products[i]
		return &updated, nil
	}
	return nil, ErrNotFound
}

func (m *Memory) DeleteProduct(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.products {
		if m.products[i].ID == id {
			m.products = append(m.products[:i], m.products[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) ListArticles(ctx context.Context) ([]models.Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Article, len(m.articles))
	copy(out, m.articles)
	sort.SliceStable(out, func(i, j int) bool { return out[i].PublishedAt.After(out[j].PublishedAt) })
	return out, nil
}

func (m *Memory) GetArticle(ctx context.Context, id string) (*models.Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.articles {
		if m.articles[i].ID == id {
			article := m.articles[i]
			return &article, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) ListTemplates(ctx context.Context) ([]models.Template, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Template, len(m.templates))
	copy(out, m.templates)
	return out, nil
}

func (m *Memory) GetTemplate(ctx context.Context, id string) (*models.Template, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.templates {
		if m.templates[i].ID == id {
			template := m.templates[i]
			return &template, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) SaveTemplate(ctx context.Context, template models.Template) (*models.Template, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	template.UpdatedAt = now
	for i := range m.templates {
		if m.templates[i].ID == template.ID {
			template.CreatedAt = m.templates[i].CreatedAt
			m.templates[i] = template
			saved := template
			return &saved, nil
		}
	}
	if template.ID == "" {
		template.ID = "template-" + uuid.NewString()
	}
	template.CreatedAt = now
	m.templates = append(m.templates, template)
	saved := template
	return &saved, nil
}

func (m *Memory) DeleteTemplate(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.templates {
		if m.templates[i].ID == id {
			m.templates = append(m.templates[:i], m.templates[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) ListCampaigns(ctx context.Context) ([]models.Campaign, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Campaign, len(m.campaigns))
	copy(out, m.campaigns)
	return out, nil
}

func (m *Memory) CreateCampaign(ctx context.Context, campaign models.Campaign) (*models.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if campaign.ID == "" {
		campaign.ID = fmt.Sprintf("CAM-%03d", len(m.campaigns)+1)
	}
	now := time.Now()
	campaign.CreatedAt = now
	campaign.UpdatedAt = now
	m.campaigns = append(m.campaigns, campaign)
	created := campaign
	return &created, nil
}

func (m *Memory) GetUserSettings(ctx context.Context, companyID string) (map[string]json.RawMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]json.RawMessage, len(m.settings[companyID]))
	for k, v := range m.settings[companyID] {
		out[k] = v
	}
	return out, nil
}

func (m *Memory) SaveUserSetting(ctx context.Context, companyID, key string, value json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.settings[companyID] == nil {
		m.settings[companyID] = make(map[string]json.RawMessage)
	}
	m.settings[companyID][key] = value
	return nil
}

func patchString(patch map[string]interface{}, key string, dst *string) error {
	val, ok := patch[key]
	if !ok {
		return nil
	}
	s, ok := val.(string)
	if !ok {
		return fmt.Errorf("el campo '%s' debe ser una cadena", key)
	}
	*dst = s
	return nil
}

func patchInt(patch map[string]interface{}, key string, dst *int) error {
	val, ok := patch[key]
	if !ok {
		return nil
	}
	switch v := val.(type) {
	case float64: // JSON numbers decode as float64
		*dst = int(v)
	case int:
		*dst = v
	default:
		return fmt.Errorf("el campo '%s' debe ser numérico", key)
	}
	return nil
}

func patchStringSlice(patch map[string]interface{}, key string, dst *[]string) error {
	val, ok := patch[key]
	if !ok {
		return nil
	}
	switch v := val.(type) {
	case []string:
		*dst = append([]string(nil), v...)
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("el campo '%s' debe ser una lista de cadenas", key)
			}
			out = append(out, s)
		}
		*dst = out
	default:
		return fmt.Errorf("el campo '%s' debe ser una lista de cadenas", key)
	}
	return nil
}

func subPatch(patch map[string]interface{}, key string) (map[string]interface{}, error) {
	val, ok := patch[key]
	if !ok {
		return nil, nil
	}
	sub, ok := val.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("el campo '%s' debe ser un objeto", key)
	}
	return sub, nil
}

func applyCompanyPatch(company *models.Company, patch map[string]interface{}) error {
	if err := patchString(patch, "name", &company.Name); err != nil {
		return err
	}
	if val, exists := patch["description"]; exists {
		if val == nil {
			company.Description = nil
		} else if s, ok := val.(string); ok {
			company.Description = &s
		} else {
			return fmt.Errorf("el campo 'description' debe ser una cadena o null")
		}
	}
	if err := patchString(patch, "category", &company.Category); err != nil {
		return err
	}
	if err := patchString(patch, "size", &company.Size); err != nil {
		return err
	}
	if err := patchString(patch, "status", &company.Status); err != nil {
		return err
	}
	if err := patchString(patch, "plan", &company.Plan); err != nil {
		return err
	}
	if err := patchString(patch, "website", &company.Website); err != nil {
		return err
	}
	if err := patchString(patch, "logo", &company.Logo); err != nil {
		return err
	}
	if err := patchInt(patch, "founded_year", &company.FoundedYear); err != nil {
		return err
	}
	if err := patchInt(patch, "employees", &company.Employees); err != nil {
		return err
	}
	if err := patchStringSlice(patch, "certifications", &company.Certifications); err != nil {
		return err
	}
	if err := patchStringSlice(patch, "gallery", &company.Gallery); err != nil {
		return err
	}
	if contact, err := subPatch(patch, "contact"); err != nil {
		return err
	} else if contact != nil {
		if err := patchString(contact, "phone", &company.Contact.Phone); err != nil {
			return err
		}
		if err := patchString(contact, "email", &company.Contact.Email); err != nil {
			return err
		}
		if err := patchString(contact, "address", &company.Contact.Address); err != nil {
			return err
		}
	}
	if socials, err := subPatch(patch, "socials"); err != nil {
		return err
	} else if socials != nil {
		if err := patchString(socials, "facebook", &company.Socials.Facebook); err != nil {
			return err
		}
		if err := patchString(socials, "instagram", &company.Socials.Instagram); err != nil {
			return err
		}
		if err := patchString(socials, "x", &company.Socials.X); err != nil {
			return err
		}
		if err := patchString(socials, "linkedin", &company.Socials.LinkedIn); err != nil {
			return err
		}
	}
	return nil
}

func applyProductPatch(product *models.Product, patch map[string]interface{}) error {
	if err := patchString(patch, "name", &product.Name); err != nil {
		return err
	}
	if val, exists := patch["description"]; exists {
		if val == nil {
			product.Description = nil
		} else if s, ok := val.(string); ok {
			product.Description = &s
		} else {
			return fmt.Errorf("el campo 'description' debe ser una cadena o null")
		}
	}
	return nil
}
