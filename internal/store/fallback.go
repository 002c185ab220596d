package store

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"

	"camacero/api-gateway/models"
)

// Fallback decorates a remote Store with a local one. Every operation is
// tried against the remote first; on any error the call is downgraded to
// the local copy with a warning, so the API never hard-fails on backend
// absence. Writes applied locally are not reconciled back to the remote;
// the divergence is logged, not surfaced.
type Fallback struct {
	remote Store
	local  Store
	log    *logrus.Logger
}

// NewFallback builds the remote-first decorator.
func NewFallback(remote, local Store, log *logrus.Logger) *Fallback {
	return &Fallback{remote: remote, local: local, log: log}
}

func (f *Fallback) warn(op string, err error) {
	f.log.WithFields(logrus.Fields{"op": op, "error": err.Error()}).
		Warn("remote data service unavailable, using local fallback")
}

func (f *Fallback) warnWrite(op string, err error) {
	f.log.WithFields(logrus.Fields{"op": op, "error": err.Error()}).
		Warn("remote data service unavailable, write applied locally only")
}

func (f *Fallback) ListCompanies(ctx context.Context) ([]models.Company, error) {
	companies, err := f.remote.ListCompanies(ctx)
	if err != nil {
		f.warn("list_companies", err)
		return f.local.ListCompanies(ctx)
	}
	return companies, nil
}

func (f *Fallback) GetCompany(ctx context.Context, id string) (*models.Company, error) {
	company, err := f.remote.GetCompany(ctx, id)
	if err != nil {
		f.warn("get_company", err)
		return f.local.GetCompany(ctx, id)
	}
	return company, nil
}

func (f *Fallback) GetCompanyByEmail(ctx context.Context, email string) (*models.Company, error) {
	company, err := f.remote.GetCompanyByEmail(ctx, email)
	if err != nil {
		f.warn("get_company_by_email", err)
		return f.local.GetCompanyByEmail(ctx, email)
	}
	return company, nil
}

func (f *Fallback) CreateCompany(ctx context.Context, company models.Company) (*models.Company, error) {
	created, err := f.remote.CreateCompany(ctx, company)
	if err != nil {
		f.warnWrite("create_company", err)
		return f.local.CreateCompany(ctx, company)
	}
	return created, nil
}

func (f *Fallback) UpdateCompany(ctx context.Context, id string, patch map[string]interface{}) (*models.Company, error) {
	updated, err := f.remote.UpdateCompany(ctx, id, patch)
	if err != nil {
		f.warnWrite("update_company", err)
		return f.local.UpdateCompany(ctx, id, patch)
	}
	return updated, nil
}

func (f *Fallback) DeleteCompany(ctx context.Context, id string) error {
	if err := f.remote.DeleteCompany(ctx, id); err != nil {
		f.warnWrite("delete_company", err)
		return f.local.DeleteCompany(ctx, id)
	}
	return nil
}

func (f *Fallback) GetSuperAdminByEmail(ctx context.Context, email string) (*models.SuperAdmin, error) {
	admin, err := f.remote.GetSuperAdminByEmail(ctx, email)
	if err != nil {
		f.warn("get_super_admin", err)
		return f.local.GetSuperAdminByEmail(ctx, email)
	}
	return admin, nil
}

func (f *Fallback) ListProducts(ctx context.Context, companyID string) ([]models.Product, error) {
	products, err := f.remote.ListProducts(ctx, companyID)
	if err != nil {
		f.warn("list_products", err)
		return f.local.ListProducts(ctx, companyID)
	}
	return products, nil
}

func (f *Fallback) CreateProduct(ctx context.Context, product models.Product) (*models.Product, error) {
	created, err := f.remote.CreateProduct(ctx, product)
	if err != nil {
		f.warnWrite("create_product", err)
		return f.local.CreateProduct(ctx, product)
	}
	return created, nil
}

func (f *Fallback) UpdateProduct(ctx context.Context, id string, patch map[string]interface{}) (*models.Product, error) {
	updated, err := f.remote.UpdateProduct(ctx, id, patch)
	if err != nil {
		f.warnWrite("update_product", err)
		return f.local.UpdateProduct(ctx, id, patch)
	}
	return updated, nil
}

func (f *Fallback) DeleteProduct(ctx context.Context, id string) error {
	if err := f.remote.DeleteProduct(ctx, id); err != nil {
		f.warnWrite("delete_product", err)
		return f.local.DeleteProduct(ctx, id)
	}
	return nil
}

func (f *Fallback) ListArticles(ctx context.Context) ([]models.Article, error) {
	articles, err := f.remote.ListArticles(ctx)
	if err != nil {
		f.warn("list_articles", err)
		return f.local.ListArticles(ctx)
	}
	return articles, nil
}

func (f *Fallback) GetArticle(ctx context.Context, id string) (*models.Article, error) {
	article, err := f.remote.GetArticle(ctx, id)
	if err != nil {
		f.warn("get_article", err)
		return f.local.GetArticle(ctx, id)
	}
	return article, nil
}

func (f *Fallback) ListTemplates(ctx context.Context) ([]models.Template, error) {
	templates, err := f.remote.ListTemplates(ctx)
	if err != nil {
		f.warn("list_templates", err)
		return f.local.ListTemplates(ctx)
	}
	return templates, nil
}

func (f *Fallback) GetTemplate(ctx context.Context, id string) (*models.Template, error) {
	template, err := f.remote.GetTemplate(ctx, id)
	if err != nil {
		f.warn("get_template", err)
		return f.local.GetTemplate(ctx, id)
	}
	return template, nil
}

func (f *Fallback) SaveTemplate(ctx context.Context, template models.Template) (*models.Template, error) {
	saved, err := f.remote.SaveTemplate(ctx, template)
	if err != nil {
		f.warnWrite("save_template", err)
		return f.local.SaveTemplate(ctx, template)
	}
	return saved, nil
}

func (f *Fallback) DeleteTemplate(ctx context.Context, id string) error {
	if err := f.remote.DeleteTemplate(ctx, id); err != nil {
		f.warnWrite("delete_template", err)
		return f.local.DeleteTemplate(ctx, id)
	}
	return nil
}

func (f *Fallback) ListCampaigns(ctx context.Context) ([]models.Campaign, error) {
	campaigns, err := f.remote.ListCampaigns(ctx)
	if err != nil {
		f.warn("list_campaigns", err)
		return f.local.ListCampaigns(ctx)
	}
	return campaigns, nil
}

func (f *Fallback) CreateCampaign(ctx context.Context, campaign models.Campaign) (*models.Campaign, error) {
	created, err := f.remote.CreateCampaign(ctx, campaign)
	if err != nil {
		f.warnWrite("create_campaign", err)
		return f.local.CreateCampaign(ctx, campaign)
	}
	return created, nil
}

func (f *Fallback) GetUserSettings(ctx context.Context, companyID string) (map[string]json.RawMessage, error) {
	settings, err := f.remote.GetUserSettings(ctx, companyID)
	if err != nil {
		f.warn("get_user_settings", err)
		return f.local.GetUserSettings(ctx, companyID)
	}
	return settings, nil
}

func (f *Fallback) SaveUserSetting(ctx context.Context, companyID, key string, value json.RawMessage) error {
	if err := f.remote.SaveUserSetting(ctx, companyID, key, value); err != nil {
		f.warnWrite("save_user_setting", err)
		return f.local.SaveUserSetting(ctx, companyID, key, value)
	}
	return nil
}
