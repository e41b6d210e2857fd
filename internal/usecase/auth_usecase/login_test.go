package auth_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"shopadmin/internal/domain/model"
	infraAuth "shopadmin/internal/infra/auth"
	"shopadmin/internal/repository"
	"shopadmin/internal/testutil"
	"shopadmin/internal/usecase"
	auth "shopadmin/internal/usecase/auth_usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// =====================
// Mock: UserRepository
// =====================

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

var _ repository.UserRepository = (*MockUserRepository)(nil)

// =====================
// Helper
// =====================

const testSecret = "test-secret"

// トークンの有効期限は実時刻で検証されるため現在時刻を使う
var now = time.Now().UTC().Truncate(time.Second)

func mustHash(t *testing.T, plain string) string {
	t.Helper()
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt failed: %v", err)
	}
	return string(b)
}

func newLoginUC(users *MockUserRepository) *auth.LoginUsecase {
	return auth.NewLoginUsecase(
		users,
		auth.NewBcryptPasswordVerifier(),
		infraAuth.NewJWTIssuer(testSecret, time.Hour),
		testutil.FixedClock{T: now},
	)
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok, "expected HTTPError, got %v", err)
	return he.Status
}

// =====================
// Login
// =====================

func TestLogin_Success(t *testing.T) {
	users := new(MockUserRepository)
	u := model.User{ID: 7, Email: "admin@example.com", PasswordHash: mustHash(t, "secret"), Role: model.RoleAdmin, IsActive: true}
	users.On("FindByEmail", mock.Anything, "admin@example.com").Return(u, nil)
	users.On("TouchLastLogin", mock.Anything, int64(7), now).Return(nil)

	out, err := newLoginUC(users).Execute(context.Background(), auth.LoginInput{Email: " Admin@Example.com ", Password: "secret"})
	require.NoError(t, err)

	assert.Equal(t, "bearer", out.TokenType)
	assert.Equal(t, 3600, out.ExpiresIn)
	assert.Equal(t, int64(7), out.User.ID)
	require.NotNil(t, out.User.LastLoginAt)

	p, err := infraAuth.ParseAccessToken(testSecret, out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(7), p.UserID)
	assert.Equal(t, model.RoleAdmin, p.Role)

	users.AssertExpectations(t)
}

func TestLogin_UnknownEmailAndWrongPasswordLookTheSame(t *testing.T) {
	users := new(MockUserRepository)
	users.On("FindByEmail", mock.Anything, "ghost@example.com").Return(model.User{}, repository.ErrNotFound)
	users.On("FindByEmail", mock.Anything, "staff@example.com").
		Return(model.User{ID: 2, PasswordHash: mustHash(t, "right"), Role: model.RoleStaff, IsActive: true}, nil)

	uc := newLoginUC(users)

	_, errUnknown := uc.Execute(context.Background(), auth.LoginInput{Email: "ghost@example.com", Password: "x"})
	_, errWrong := uc.Execute(context.Background(), auth.LoginInput{Email: "staff@example.com", Password: "wrong"})

	assert.Equal(t, http.StatusUnauthorized, httpStatus(t, errUnknown))
	assert.Equal(t, errUnknown.Error(), errWrong.Error())
	users.AssertNotCalled(t, "TouchLastLogin", mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin_InactiveUser(t *testing.T) {
	users := new(MockUserRepository)
	users.On("FindByEmail", mock.Anything, "old@example.com").
		Return(model.User{ID: 3, PasswordHash: mustHash(t, "pw"), Role: model.RoleStaff, IsActive: false}, nil)

	_, err := newLoginUC(users).Execute(context.Background(), auth.LoginInput{Email: "old@example.com", Password: "pw"})
	assert.Equal(t, http.StatusForbidden, httpStatus(t, err))
}

func TestLogin_MissingFieldsAndDBError(t *testing.T) {
	users := new(MockUserRepository)
	users.On("FindByEmail", mock.Anything, "a@example.com").Return(model.User{}, errors.New("conn reset"))
	uc := newLoginUC(users)

	_, err := uc.Execute(context.Background(), auth.LoginInput{Email: "", Password: "pw"})
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))

	_, err = uc.Execute(context.Background(), auth.LoginInput{Email: "a@example.com", Password: "pw"})
	assert.Equal(t, http.StatusInternalServerError, httpStatus(t, err))
}

// =====================
// Me
// =====================

func TestMe(t *testing.T) {
	users := new(MockUserRepository)
	users.On("FindByID", mock.Anything, int64(7)).Return(model.User{ID: 7, Email: "admin@example.com"}, nil)
	users.On("FindByID", mock.Anything, int64(8)).Return(model.User{}, repository.ErrNotFound)

	uc := auth.NewMeUsecase(users)

	u, err := uc.Execute(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", u.Email)

	_, err = uc.Execute(context.Background(), 8)
	assert.Equal(t, http.StatusUnauthorized, httpStatus(t, err))
}

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := auth.NewBcryptPasswordHasher(bcrypt.MinCost)
	hashed, err := h.Hash("pw")
	require.NoError(t, err)

	v := auth.NewBcryptPasswordVerifier()
	assert.True(t, v.Verify("pw", hashed))
	assert.False(t, v.Verify("nope", hashed))
}
