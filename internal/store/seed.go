package store

import (
	"time"

	"camacero/api-gateway/models"
)

func strptr(s string) *string { return &s }

// seedCompanies is the fixed fallback roster of demo accounts used when
// the remote service is unavailable.
func seedCompanies() []models.Company {
	now := time.Now()
	return []models.Company{
		{
			ID:          "1",
			Email:       "admin@aceriaspaz.com",
			Password:    "admin123",
			Name:        "Acerías Paz del Río",
			Role:        models.RoleAdmin,
			Plan:        "Premium",
			Status:      models.StatusActive,
			Permissions: []string{"read", "write", "delete", "manage_users", "view_analytics"},
			Category:    "Siderúrgica",
			Size:        "Grande",
			FoundedYear: 1948,
			Employees:   2500,
			Website:     "https://www.pazdelrio.com.co",
			Logo:        "https://images.unsplash.com/photo-1534398079543-2ae36a7a8fb1?q=80&w=200",
			Socials:     models.Socials{Facebook: "pazdelrio", Instagram: "pazdelrio", X: "pazdelrio", LinkedIn: "company/pazdelrio"},
			Contact:     models.Contact{Phone: "+57 310 123 4567", Email: "ventas@pazdelrio.com.co", Address: "Cra. 10 #28-49, Bogotá"},
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "2",
			Email:       "gerente@gerdau.com",
			Password:    "gerente123",
			Name:        "Gerdau Diaco",
			Role:        models.RoleManager,
			Plan:        "Básico",
			Status:      models.StatusActive,
			Permissions: []string{"read", "write", "view_analytics"},
			Category:    "Siderúrgica",
			Size:        "Grande",
			FoundedYear: 1961,
			Employees:   1800,
			Website:     "https://www.gerdau.com",
			Logo:        "https://images.unsplash.com/photo-1621962433189-06a15548a3e2?q=80&w=200",
			Socials:     models.Socials{Facebook: "gerdaudiaco", Instagram: "gerdaudiaco", X: "gerdaudiaco", LinkedIn: "company/gerdau-diaco"},
			Contact:     models.Contact{Phone: "+57 310 555 0000", Email: "contacto@gerdau.com", Address: "Medellín, Colombia"},
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "3",
			Email:       "usuario@ternium.com",
			Password:    "usuario123",
			Name:        "Ternium Colombia",
			Role:        models.RoleUser,
			Plan:        "Premium",
			Status:      "Pendiente",
			Permissions: []string{"read", "write"},
			Category:    "Metalúrgica",
			Size:        "Grande",
			FoundedYear: 1960,
			Employees:   3200,
			Website:     "https://www.ternium.com",
			Logo:        "https://images.unsplash.com/photo-1517048676732-d65bc937f952?q=80&w=200",
			Socials:     models.Socials{Facebook: "ternium", Instagram: "ternium", X: "ternium", LinkedIn: "company/ternium"},
			Contact:     models.Contact{Phone: "+57 320 555 1234", Email: "ventas@ternium.com", Address: "Cartagena, Colombia"},
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "4",
			Email:       "operador@sidenal.com",
			Password:    "operador123",
			Name:        "Sidenal",
			Role:        models.RoleOperator,
			Plan:        "Gratis",
			Status:      models.StatusActive,
			Permissions: []string{"read"},
			Category:    "Siderúrgica",
			Size:        "Mediana",
			FoundedYear: 1995,
			Employees:   150,
			Website:     "https://www.sidenal.com",
			Logo:        "https://images.unsplash.com/photo-1606857521015-7f9fcf423740?q=80&w=200",
			Socials:     models.Socials{Facebook: "sidenal", Instagram: "sidenal", X: "sidenal", LinkedIn: "company/sidenal"},
			Contact:     models.Contact{Phone: "+57 315 000 9999", Email: "info@sidenal.com", Address: "Cali, Colombia"},
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "5",
			Email:       "pruebas@camacero.com",
			Password:    "prueba123",
			Name:        "Empresa Pruebas",
			Role:        models.RoleUser,
			Plan:        "Gratis",
			Status:      models.StatusActive,
			Permissions: []string{"read", "write"},
			Category:    "Servicios",
			Size:        "Pequeña",
			FoundedYear: 2020,
			Employees:   25,
			Website:     "https://www.ejemplo.com",
			Logo:        "https://images.unsplash.com/photo-1519494026892-80bbd2d6fd0d?q=80&w=200",
			Socials:     models.Socials{Facebook: "empresa.pruebas", Instagram: "empresa.pruebas", X: "empresa_pruebas", LinkedIn: "company/empresa-pruebas"},
			Contact:     models.Contact{Phone: "+57 300 000 0000", Email: "pruebas@camacero.com", Address: "Bogotá, Colombia"},
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
}

// seedSuperAdmin carries no password hash, so the flat demo credential
// path stays reachable in fallback mode.
func seedSuperAdmin() models.SuperAdmin {
	return models.SuperAdmin{
		Email:       "superadmin@camacero.com",
		Name:        "Super Administrador",
		Role:        models.RoleSuperAdmin,
		Permissions: []string{models.PermissionAll},
	}
}

func seedProducts() []models.Product {
	now := time.Now()
	return []models.Product{
		{ID: "p-1", CompanyID: "1", Name: "Acero estructural", Description: strptr("Perfiles y láminas para construcción."), CreatedAt: now, UpdatedAt: now},
		{ID: "p-2", CompanyID: "1", Name: "Alambrón", Description: strptr("Alambrón de bajo carbono en rollos."), CreatedAt: now, UpdatedAt: now},
		{ID: "p-3", CompanyID: "2", Name: "Varilla corrugada", Description: strptr("Varilla sismorresistente para obra civil."), CreatedAt: now, UpdatedAt: now},
		{ID: "p-4", CompanyID: "4", Name: "Mallas electrosoldadas", Description: strptr("Mallas estándar y a medida."), CreatedAt: now, UpdatedAt: now},
	}
}

func seedArticles() []models.Article {
	return []models.Article{
		{
			ID:          "a-1",
			Title:       "El sector siderúrgico crece un 8% en el último trimestre",
			Summary:     "Las cifras del gremio confirman la recuperación de la demanda interna.",
			Body:        "La producción nacional de acero crudo alcanzó niveles previos a la desaceleración, impulsada por la obra pública y la construcción de vivienda.",
			Image:       "https://images.unsplash.com/photo-1565793298595-6a879b1d9492?q=80&w=800",
			CompanyID:   "1",
			CompanyName: "Acerías Paz del Río",
			PublishedAt: time.Date(2025, 7, 14, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:          "a-2",
			Title:       "Nueva línea de galvanizado entra en operación",
			Summary:     "La planta amplía su capacidad de productos recubiertos.",
			Body:        "Con una inversión destinada a atender la demanda de lámina galvanizada, la nueva línea suma capacidad anual y reduce tiempos de entrega.",
			Image:       "https://images.unsplash.com/photo-1504328345606-18bbc8c9d7d1?q=80&w=800",
			CompanyID:   "2",
			CompanyName: "Gerdau Diaco",
			PublishedAt: time.Date(2025, 6, 2, 12, 30, 0, 0, time.UTC),
		},
		{
			ID:          "a-3",
			Title:       "Certificación ambiental para plantas de la región",
			Summary:     "Tres plantas obtienen el sello de gestión ambiental.",
			Body:        "El proceso de certificación cubrió emisiones, manejo de agua y economía circular de subproductos siderúrgicos.",
			Image:       "https://images.unsplash.com/photo-1473341304170-971dccb5ac1e?q=80&w=800",
			CompanyID:   "4",
			CompanyName: "Sidenal",
			PublishedAt: time.Date(2025, 5, 20, 8, 0, 0, 0, time.UTC),
		},
	}
}

func seedCampaigns() []models.Campaign {
	now := time.Now()
	return []models.Campaign{
		{ID: "CAM-001", Name: "Lanzamiento de Verano 2025", Status: models.CampaignSent, Recipients: 5200, OpenRate: "25.4%", ClickRate: "4.8%", CreatedAt: now, UpdatedAt: now},
		{ID: "CAM-002", Name: "Oferta Exclusiva - Black Friday", Status: models.CampaignDraft, Recipients: 0, CreatedAt: now, UpdatedAt: now},
		{ID: "CAM-003", Name: "Newsletter Mensual - Julio", Status: models.CampaignScheduled, Recipients: 12500, CreatedAt: now, UpdatedAt: now},
		{ID: "CAM-004", Name: "Promoción Día del Padre", Status: models.CampaignSent, Recipients: 4800, OpenRate: "22.1%", ClickRate: "3.5%", CreatedAt: now, UpdatedAt: now},
	}
}
