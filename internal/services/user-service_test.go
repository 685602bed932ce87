package services

import (
	"testing"

	"github.com/ss-immigration/application_service/internal/domain"
	"github.com/ss-immigration/application_service/internal/dto"
	"github.com/ss-immigration/application_service/internal/errs"
	"github.com/ss-immigration/application_service/internal/helper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	users  map[string]*domain.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}, nextID: 1}
}

func (r *fakeUserRepo) CreateUser(user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, gorm.ErrDuplicatedKey
	}
	user.ID = r.nextID
	r.nextID++
	r.users[user.Email] = user
	return user, nil
}

func (r *fakeUserRepo) SaveUser(user *domain.User) error {
	r.users[user.Email] = user
	return nil
}

func (r *fakeUserRepo) FindUserByEmail(email string) (*domain.User, error) {
	user, ok := r.users[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) FindUserByID(id uint) (*domain.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func newUserService() (UserService, *fakeUserRepo, helper.Auth) {
	repo := newFakeUserRepo()
	auth := helper.SetupAuth("test-secret")
	return NewUserService(repo, auth), repo, auth
}

func registerRequest() dto.RegisterRequest {
	return dto.RegisterRequest{
		Email:     "Deng@Example.com",
		Password:  "s3cret-pass",
		FirstName: "Deng",
		LastName:  "Majok",
		Phone:     "+211920000000",
	}
}

func TestRegisterCreatesApplicant(t *testing.T) {
	svc, repo, auth := newUserService()

	token, err := svc.Register(registerRequest())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// email is normalized to lower case
	user, ok := repo.users["deng@example.com"]
	require.True(t, ok)
	assert.Equal(t, domain.RoleApplicant, user.Role)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)

	claims, err := auth.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "applicant", claims.Role)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := newUserService()

	_, err := svc.Register(registerRequest())
	require.NoError(t, err)

	_, err = svc.Register(registerRequest())
	v, ok := errs.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "email", v.Field)
	assert.Contains(t, v.Message, "already registered")
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newUserService()

	req := registerRequest()
	req.Email = "not-an-email"
	_, err := svc.Register(req)
	v, ok := errs.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "email", v.Field)

	req = registerRequest()
	req.Password = "short"
	_, err = svc.Register(req)
	v, ok = errs.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "password", v.Field)
}

func TestLogin(t *testing.T) {
	svc, _, _ := newUserService()
	_, err := svc.Register(registerRequest())
	require.NoError(t, err)

	token, err := svc.Login(dto.UserLogin{Email: "deng@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = svc.Login(dto.UserLogin{Email: "deng@example.com", Password: "wrong"})
	assert.Error(t, err)

	_, err = svc.Login(dto.UserLogin{Email: "nobody@example.com", Password: "s3cret-pass"})
	assert.Error(t, err)
}

func TestFindByID(t *testing.T) {
	svc, repo, _ := newUserService()
	_, err := svc.Register(registerRequest())
	require.NoError(t, err)

	user, err := svc.FindByID(repo.users["deng@example.com"].ID)
	require.NoError(t, err)
	assert.Equal(t, "deng@example.com", user.Email)

	_, err = svc.FindByID(999)
	assert.True(t, errs.IsNotFound(err))
}
