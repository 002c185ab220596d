// Package auth validates credentials against the company and superadmin
// directories and produces normalized session principals.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"camacero/api-gateway/internal/store"
	"camacero/api-gateway/models"
)

var (
	ErrMissingCredentials      = errors.New("correo y contraseña son obligatorios")
	ErrInvalidCredentials      = errors.New("Credenciales inválidas")
	ErrInvalidAdminCredentials = errors.New("Credenciales de administrador inválidas")
)

// demoPasswords are the flat credentials accepted for remote company rows,
// which carry no password column of their own.
var demoPasswords = map[string]struct{}{
	"admin123":    {},
	"gerente123":  {},
	"usuario123":  {},
	"operador123": {},
}

// legacyAdminPassword is accepted for superadmin rows without a stored
// hash.
const legacyAdminPassword = "superadmin123"

// InactiveAccountError reports a matching account whose status blocks
// login. The status itself is part of the user-facing message.
type InactiveAccountError struct {
	Status string
}

func (e *InactiveAccountError) Error() string {
	return fmt.Sprintf("Tu cuenta está en estado: %s. Contacta al administrador.", e.Status)
}

// Service authenticates principals against the repository, which already
// resolves remote-first with local fallback.
type Service struct {
	store store.Store
	log   *logrus.Logger
}

func NewService(st store.Store, log *logrus.Logger) *Service {
	return &Service{store: st, log: log}
}

// AuthenticateCompany validates a company login and returns the normalized
// principal. Accepted passwords are the roster record's own demo password
// or one of the flat demo credentials. Accounts whose status is not
// "Activo" are rejected with the status in the message even when the
// password matches. No session state is touched here; the caller persists
// the principal only on success.
func (s *Service) AuthenticateCompany(ctx context.Context, email, password string) (*models.Principal, error) {
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	company, err := s.store.GetCompanyByEmail(ctx, email)
	if err != nil {
		s.log.WithFields(logrus.Fields{"email": email, "error": err.Error()}).
			Info("company login failed: no matching account")
		return nil, ErrInvalidCredentials
	}

	if !companyPasswordValid(company, password) {
		return nil, ErrInvalidCredentials
	}

	if company.Status != models.StatusActive {
		return nil, &InactiveAccountError{Status: company.Status}
	}

	return company.Principal(), nil
}

func companyPasswordValid(company *models.Company, password string) bool {
	if company.Password != "" {
		return password == company.Password
	}
	_, ok := demoPasswords[password]
	return ok
}

// AuthenticateSuperAdmin validates the back-office login. Rows with a
// stored hash are checked with bcrypt; rows without one accept the legacy
// flat credential.
func (s *Service) AuthenticateSuperAdmin(ctx context.Context, email, password string) (*models.Principal, error) {
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	admin, err := s.store.GetSuperAdminByEmail(ctx, email)
	if err != nil {
		s.log.WithFields(logrus.Fields{"email": email, "error": err.Error()}).
			Info("superadmin login failed: no matching account")
		return nil, ErrInvalidAdminCredentials
	}

	if admin.PasswordHash != nil {
		if bcrypt.CompareHashAndPassword([]byte(*admin.PasswordHash), []byte(password)) != nil {
			return nil, ErrInvalidAdminCredentials
		}
	} else if password != legacyAdminPassword {
		return nil, ErrInvalidAdminCredentials
	}

	return admin.Principal(), nil
}
