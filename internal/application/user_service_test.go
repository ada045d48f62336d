package application

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inmobo/inmobo-api/internal/domain/entity"
	"github.com/inmobo/inmobo-api/pkg/helpers"
)

func newUserService(t *testing.T) (*UserService, *fakeUserRepo) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	repo := &fakeUserRepo{byID: map[string]entity.User{}}
	jwt := helpers.NewJWTManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	return NewUserService(repo, jwt, rdb, logrus.New(), nil), repo
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, _ := newUserService(t)

	u, err := svc.Register(context.Background(), RegisterInput{
		Email: "ana@example.com", Password: "secreta123", Name: "Ana",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.NotEqual(t, "secreta123", u.Password)
	assert.True(t, helpers.CompareHashAndPassword(u.Password, "secreta123"))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "ana@example.com", Password: "secreta123", Name: "Ana"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Email: "ana@example.com", Password: "otra456789", Name: "Ana B"})
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Equal(t, "Este correo ya está registrado.", AuthErrorMessage(err))
}

func TestLoginIssuesSessionTokens(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "ana@example.com", Password: "secreta123", Name: "Ana"})
	require.NoError(t, err)

	u, pair, err := svc.Login(ctx, "ana@example.com", "secreta123")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.True(t, pair.AccessTokenExpiry.After(time.Now()))

	claims, err := svc.JWT.ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)

	// the session in Redis carries the same sid as the token
	data, err := svc.Redis.HGetAll(ctx, "user:session:"+u.ID).Result()
	require.NoError(t, err)
	assert.Equal(t, claims.SessionID, data["sid"])
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "ana@example.com", Password: "secreta123", Name: "Ana"})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "ana@example.com", "incorrecta")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, "Correo o contraseña incorrectos.", AuthErrorMessage(err))

	_, _, err = svc.Login(ctx, "nadie@example.com", "secreta123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshRotatesSession(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "ana@example.com", Password: "secreta123", Name: "Ana"})
	require.NoError(t, err)
	u, pair, err := svc.Login(ctx, "ana@example.com", "secreta123")
	require.NoError(t, err)

	newPair, userID, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)
	assert.NotEmpty(t, newPair.AccessToken)

	// the old refresh token belongs to a replaced session now
	_, _, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "ana@example.com", Password: "secreta123", Name: "Ana"})
	require.NoError(t, err)
	u, pair, err := svc.Login(ctx, "ana@example.com", "secreta123")
	require.NoError(t, err)

	svc.Logout(ctx, u.ID)

	_, _, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{Email: "ana@example.com", Password: "secreta123", Name: "Ana"})
	require.NoError(t, err)

	got, err := svc.UpdateProfile(ctx, u.ID, UpdateProfileInput{Name: "Ana María", Phone: "+59171234567"})
	require.NoError(t, err)
	assert.Equal(t, "Ana María", got.Name)
	assert.Equal(t, "+59171234567", got.Phone)

	// empty fields leave existing values alone
	got, err = svc.UpdateProfile(ctx, u.ID, UpdateProfileInput{})
	require.NoError(t, err)
	assert.Equal(t, "Ana María", got.Name)
	assert.Equal(t, "+59171234567", got.Phone)
}

func TestCityPreference(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	assert.Equal(t, "", svc.CityPreference(ctx, "u1"))
	require.NoError(t, svc.SetCityPreference(ctx, "u1", "Santa Cruz"))
	assert.Equal(t, "Santa Cruz", svc.CityPreference(ctx, "u1"))

	// per user
	assert.Equal(t, "", svc.CityPreference(ctx, "u2"))
}
