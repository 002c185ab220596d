package auth

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"camacero/api-gateway/internal/store"
	"camacero/api-gateway/models"
)

func testService(st store.Store) *Service {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewService(st, log)
}

func TestAuthenticateCompanyMissingCredentials(t *testing.T) {
	svc := testService(store.NewMemory())

	_, err := svc.AuthenticateCompany(context.Background(), "", "admin123")
	assert.ErrorIs(t, err, ErrMissingCredentials)

	_, err = svc.AuthenticateCompany(context.Background(), "admin@aceriaspaz.com", "")
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestAuthenticateCompanyUnknownEmail(t *testing.T) {
	svc := testService(store.NewMemory())
	_, err := svc.AuthenticateCompany(context.Background(), "nadie@ejemplo.com", "admin123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateCompanyWrongPassword(t *testing.T) {
	svc := testService(store.NewMemory())
	_, err := svc.AuthenticateCompany(context.Background(), "admin@aceriaspaz.com", "incorrecta")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateCompanySuccess(t *testing.T) {
	svc := testService(store.NewMemory())

	principal, err := svc.AuthenticateCompany(context.Background(), "admin@aceriaspaz.com", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "admin@aceriaspaz.com", principal.Email)
	assert.Equal(t, models.RoleAdmin, principal.Role)
	assert.Equal(t, models.StatusActive, principal.Status)
	assert.True(t, principal.HasPermission("manage_users"))
	assert.False(t, principal.LoginTime.IsZero())
}

func TestAuthenticateCompanyInactiveAccount(t *testing.T) {
	svc := testService(store.NewMemory())

	// The Ternium roster account carries a matching password but a
	// "Pendiente" status, which must block the login with the status in
	// the message.
	_, err := svc.AuthenticateCompany(context.Background(), "usuario@ternium.com", "usuario123")
	require.Error(t, err)

	var inactive *InactiveAccountError
	require.ErrorAs(t, err, &inactive)
	assert.Equal(t, "Pendiente", inactive.Status)
	assert.Contains(t, err.Error(), "Pendiente")
}

func TestAuthenticateCompanyDemoPasswordForPasswordlessRow(t *testing.T) {
	mem := store.NewMemory()
	_, err := mem.CreateCompany(context.Background(), models.Company{
		Email:  "remota@ejemplo.com",
		Name:   "Empresa Remota",
		Role:   models.RoleUser,
		Status: models.StatusActive,
	})
	require.NoError(t, err)

	svc := testService(mem)

	// Rows without a password of their own accept the flat demo set.
	_, err = svc.AuthenticateCompany(context.Background(), "remota@ejemplo.com", "gerente123")
	assert.NoError(t, err)

	_, err = svc.AuthenticateCompany(context.Background(), "remota@ejemplo.com", "otracosa")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateSuperAdminLegacyPassword(t *testing.T) {
	svc := testService(store.NewMemory())

	principal, err := svc.AuthenticateSuperAdmin(context.Background(), "superadmin@camacero.com", "superadmin123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleSuperAdmin, principal.Role)
	assert.Equal(t, "Super Administrador", principal.Name)
	assert.True(t, principal.HasPermission("manage_users"))

	_, err = svc.AuthenticateSuperAdmin(context.Background(), "superadmin@camacero.com", "admin123")
	assert.ErrorIs(t, err, ErrInvalidAdminCredentials)
}

func TestAuthenticateSuperAdminUnknownEmail(t *testing.T) {
	svc := testService(store.NewMemory())
	_, err := svc.AuthenticateSuperAdmin(context.Background(), "otro@camacero.com", "superadmin123")
	assert.ErrorIs(t, err, ErrInvalidAdminCredentials)
}

// hashedAdminStore overrides the superadmin lookup with a row that
// carries a bcrypt hash.
type hashedAdminStore struct {
	*store.Memory
	admin models.SuperAdmin
}

func (s *hashedAdminStore) GetSuperAdminByEmail(ctx context.Context, email string) (*models.SuperAdmin, error) {
	if email != s.admin.Email {
		return nil, store.ErrNotFound
	}
	admin := s.admin
	return &admin, nil
}

func TestAuthenticateSuperAdminBcryptHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secreta-fuerte"), bcrypt.MinCost)
	require.NoError(t, err)
	hashStr := string(hash)

	st := &hashedAdminStore{
		Memory: store.NewMemory(),
		admin: models.SuperAdmin{
			Email:        "superadmin@camacero.com",
			Role:         models.RoleSuperAdmin,
			Permissions:  []string{models.PermissionAll},
			PasswordHash: &hashStr,
		},
	}
	svc := testService(st)

	_, err = svc.AuthenticateSuperAdmin(context.Background(), "superadmin@camacero.com", "secreta-fuerte")
	assert.NoError(t, err)

	// The legacy flat credential must stop working once a hash exists.
	_, err = svc.AuthenticateSuperAdmin(context.Background(), "superadmin@camacero.com", "superadmin123")
	assert.ErrorIs(t, err, ErrInvalidAdminCredentials)
}
