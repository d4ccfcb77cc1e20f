package login

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/partner-portal/pkg/portaluser"
)

type loginFixture struct {
	service     *LoginService
	users       *portaluser.UserService
	assignments *portaluser.InMemoryPamAssignmentRepository
	jwt         *Jwt
}

func newLoginFixture() loginFixture {
	users := portaluser.NewUserService(portaluser.NewInMemoryUserRepository())
	assignments := portaluser.NewInMemoryPamAssignmentRepository()
	jwtSvc := NewJwtServiceOptions("test-secret")
	return loginFixture{
		service:     NewLoginService(users, assignments, jwtSvc),
		users:       users,
		assignments: assignments,
		jwt:         jwtSvc,
	}
}

func TestLogin(t *testing.T) {
	f := newLoginFixture()

	companyID := uuid.New()
	created, err := f.users.CreateUser(context.Background(), portaluser.CreateUserRequest{
		Username:  "spoc",
		Email:     "spoc@example.com",
		Role:      "Partner SPOC Admin",
		CompanyID: &companyID,
		Password:  "s3cret-pass",
	})
	require.NoError(t, err)

	token, expiry, user, err := f.service.Login(context.Background(), "spoc@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.False(t, expiry.IsZero())

	claims, err := f.jwt.ParseTokenStr(token)
	require.NoError(t, err)
	assert.Equal(t, created.ID.String(), claims["user_id"])
	assert.Equal(t, "spoc@example.com", claims["email"])
	assert.Equal(t, "Partner SPOC Admin", claims["role"])
	assert.Equal(t, companyID.String(), claims["company_id"])
	assert.NotContains(t, claims, "assigned_company_ids")
}

func TestLoginPamCarriesAssignments(t *testing.T) {
	f := newLoginFixture()

	pam, err := f.users.CreateUser(context.Background(), portaluser.CreateUserRequest{
		Username: "pam",
		Email:    "pam@example.com",
		Role:     "Partner Account Manager",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	first := uuid.New()
	second := uuid.New()
	require.NoError(t, f.assignments.Assign(context.Background(), pam.ID, first))
	require.NoError(t, f.assignments.Assign(context.Background(), pam.ID, second))

	token, _, _, err := f.service.Login(context.Background(), "pam@example.com", "s3cret-pass")
	require.NoError(t, err)

	claims, err := f.jwt.ParseTokenStr(token)
	require.NoError(t, err)
	assigned, ok := claims["assigned_company_ids"].([]interface{})
	require.True(t, ok)
	assert.ElementsMatch(t, []interface{}{first.String(), second.String()}, assigned)
}

func TestLoginInvalidCredentials(t *testing.T) {
	f := newLoginFixture()

	_, err := f.users.CreateUser(context.Background(), portaluser.CreateUserRequest{
		Username: "jane",
		Email:    "jane@example.com",
		Role:     "Viewer",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	_, _, _, err = f.service.Login(context.Background(), "jane@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown email reads the same as a wrong password
	_, _, _, err = f.service.Login(context.Background(), "nobody@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestParseTokenStrRejectsTampering(t *testing.T) {
	f := newLoginFixture()

	token, _, err := f.jwt.CreateAccessToken(map[string]interface{}{"user_id": uuid.New().String()})
	require.NoError(t, err)

	other := NewJwtServiceOptions("other-secret")
	_, err = other.ParseTokenStr(token)
	assert.Error(t, err)

	_, err = f.jwt.ParseTokenStr(token + "x")
	assert.Error(t, err)
}
