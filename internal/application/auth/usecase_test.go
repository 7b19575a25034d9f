package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega-api/internal/application/auth"
	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/bodega-api/pkg/jwt"
)

const testSecret = "test-secret"

func newAuth(s *memory.Store) *auth.AuthUseCase {
	return auth.NewAuthUseCase(s.Users(), auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "bodega-test"}, nil)
}

func TestLogin_DevuelveTokenConRolYEmail(t *testing.T) {
	uc := newAuth(memory.NewStore())
	ctx := context.Background()
	_, err := uc.CreateUser(ctx, dto.CreateUserRequest{Email: "Bodega@Tienda.com", Password: "secreto", Role: entity.RoleWarehouseStaff})
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "bodega@tienda.com", Password: "secreto"})
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleWarehouseStaff, claims.Role)
	assert.Equal(t, "bodega@tienda.com", claims.Email)
	assert.Equal(t, out.User.ID, claims.UserID)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	uc := newAuth(memory.NewStore())
	ctx := context.Background()
	_, err := uc.CreateUser(ctx, dto.CreateUserRequest{Email: "a@b.com", Password: "secreto"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@b.com", Password: "otro"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@b.com", Password: "otro"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestCreateUser_RolPorDefectoYDuplicado(t *testing.T) {
	uc := newAuth(memory.NewStore())
	ctx := context.Background()

	u, err := uc.CreateUser(ctx, dto.CreateUserRequest{Email: "a@b.com", Password: "secreto"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleRequester, u.Role)
	assert.Equal(t, "a@b.com", u.Name)

	_, err = uc.CreateUser(ctx, dto.CreateUserRequest{Email: "A@B.com", Password: "secreto"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.CreateUser(ctx, dto.CreateUserRequest{Email: "c@b.com", Password: "secreto", Role: "jefe"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEnsureAdmin_EsIdempotente(t *testing.T) {
	s := memory.NewStore()
	uc := newAuth(s)
	ctx := context.Background()

	require.NoError(t, uc.EnsureAdmin(ctx, "admin@tienda.com", "admin123"))
	require.NoError(t, uc.EnsureAdmin(ctx, "admin@tienda.com", "otra"))

	users, err := uc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, entity.RoleAdmin, users[0].Role)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "admin@tienda.com", Password: "admin123"})
	assert.NoError(t, err, "el segundo arranque no cambia el password")
}

func TestCan_CapacidadesPorRol(t *testing.T) {
	assert.True(t, auth.Can(entity.RoleAdmin, auth.CapUsersManage))
	assert.False(t, auth.Can(entity.RoleWarehouseStaff, auth.CapUsersManage))
	assert.True(t, auth.Can(entity.RoleWarehouseStaff, auth.CapOrdersFulfill))
	assert.True(t, auth.Can(entity.RoleWarehouseStaff, auth.CapCatalogImport))
	assert.False(t, auth.Can(entity.RoleRequester, auth.CapOrdersFulfill))
	assert.False(t, auth.Can("desconocido", auth.CapCatalogWrite))
}
