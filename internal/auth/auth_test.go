package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/Moayad7/syriacar/internal/api"
	"github.com/Moayad7/syriacar/internal/authz"
	"github.com/Moayad7/syriacar/internal/models"
	"github.com/Moayad7/syriacar/mocks"
)

func newSvc(t *testing.T, stored models.Session) (*Service, *mocks.MockStore, *mocks.MockAuthAPI, *mocks.MockNavigator) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	st := mocks.NewMockStore(ctrl)
	authAPI := mocks.NewMockAuthAPI(ctrl)
	nav := mocks.NewMockNavigator(ctrl)

	st.EXPECT().Read().Return(stored, nil)

	svc, err := New(st, authAPI, nav)
	require.NoError(t, err)

	return svc, st, authAPI, nav
}

func TestNew_RestoresSessionFromStore(t *testing.T) {
	t.Parallel()

	stored := models.Session{Token: "abc123", Role: models.RoleAdmin, UserID: "7"}
	svc, _, _, _ := newSvc(t, stored)

	require.True(t, svc.IsAuthenticated())
	require.Equal(t, stored, svc.Session())
	require.Equal(t, "abc123", svc.Token())
}

func TestNew_GuestWhenStoreEmpty(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newSvc(t, models.Guest())

	require.False(t, svc.IsAuthenticated())
	require.Equal(t, "", svc.Token())
}

// Просроченный JWT чистится синхронно при старте, без запроса к серверу.
func TestNew_ClearsExpiredJWT(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mocks.NewMockStore(ctrl)
	expired := signedToken(t, time.Now().Add(-time.Hour))

	st.EXPECT().Read().Return(models.Session{Token: expired, Role: models.RoleUser, UserID: "1"}, nil)
	st.EXPECT().Clear().Return(nil)

	svc, err := New(st, mocks.NewMockAuthAPI(ctrl), mocks.NewMockNavigator(ctrl))
	require.NoError(t, err)

	require.False(t, svc.IsAuthenticated())
}

func TestNew_StoreReadError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mocks.NewMockStore(ctrl)
	st.EXPECT().Read().Return(models.Guest(), errors.New("disk gone"))

	_, err := New(st, mocks.NewMockAuthAPI(ctrl), mocks.NewMockNavigator(ctrl))
	require.Error(t, err)
}

func TestLogin_OK(t *testing.T) {
	t.Parallel()

	svc, st, authAPI, nav := newSvc(t, models.Guest())

	creds := &api.Credentials{Token: "issued", UserID: "7", Role: models.RoleAdmin}
	authAPI.EXPECT().
		Login(gomock.Any(), api.LoginRequest{Email: "u@e.com", Password: "pw"}).
		Return(creds, nil)
	st.EXPECT().
		Write(models.Session{Token: "issued", Role: models.RoleAdmin, UserID: "7"}).
		Return(nil)
	nav.EXPECT().NavigateTo(authz.RouteHome)

	require.NoError(t, svc.Login(context.Background(), "u@e.com", "pw"))
	require.True(t, svc.IsAuthenticated())
	require.Equal(t, "issued", svc.Token())
}

func TestLogin_InvalidCredentials(t *testing.T) {
	t.Parallel()

	svc, _, authAPI, _ := newSvc(t, models.Guest())

	authAPI.EXPECT().
		Login(gomock.Any(), gomock.Any()).
		Return(nil, api.ErrUnauthenticated)

	err := svc.Login(context.Background(), "u@e.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	require.False(t, svc.IsAuthenticated())
}

// Сетевая ошибка login не меняет состояние и не навигирует.
func TestLogin_TransportError_Propagated(t *testing.T) {
	t.Parallel()

	svc, _, authAPI, _ := newSvc(t, models.Guest())

	authAPI.EXPECT().
		Login(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection refused"))

	err := svc.Login(context.Background(), "u@e.com", "pw")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrInvalidCredentials)
	require.False(t, svc.IsAuthenticated())
}

// Запись сессии не удалась — аутентифицированным не считаемся.
func TestLogin_StoreWriteError(t *testing.T) {
	t.Parallel()

	svc, st, authAPI, _ := newSvc(t, models.Guest())

	authAPI.EXPECT().
		Login(gomock.Any(), gomock.Any()).
		Return(&api.Credentials{Token: "issued", UserID: "7", Role: models.RoleUser}, nil)
	st.EXPECT().Write(gomock.Any()).Return(errors.New("disk full"))

	err := svc.Login(context.Background(), "u@e.com", "pw")
	require.Error(t, err)
	require.False(t, svc.IsAuthenticated())
}

func TestRegister_OK(t *testing.T) {
	t.Parallel()

	svc, st, authAPI, nav := newSvc(t, models.Guest())

	req := api.RegisterRequest{
		Name:                 "Moayad",
		Email:                "m@e.com",
		Password:             "Abcdef1!",
		PasswordConfirmation: "Abcdef1!",
		Role:                 string(models.RoleUser),
	}
	authAPI.EXPECT().
		Register(gomock.Any(), req).
		Return(&api.Credentials{Token: "fresh", UserID: "9", Role: models.RoleUser}, nil)
	st.EXPECT().Write(gomock.Any()).Return(nil)
	nav.EXPECT().NavigateTo(authz.RouteHome)

	require.NoError(t, svc.Register(context.Background(), req))
	require.True(t, svc.IsAuthenticated())
}

func TestRegister_PasswordMismatch(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newSvc(t, models.Guest())

	err := svc.Register(context.Background(), api.RegisterRequest{
		Password:             "one",
		PasswordConfirmation: "two",
	})
	require.ErrorIs(t, err, ErrPasswordMismatch)
}

func TestLogout_ClearsAndNavigatesHome(t *testing.T) {
	t.Parallel()

	stored := models.Session{Token: "abc", Role: models.RoleUser, UserID: "1"}
	svc, st, _, nav := newSvc(t, stored)

	st.EXPECT().Clear().Return(nil)
	nav.EXPECT().NavigateTo(authz.RouteHome)

	svc.Logout()

	require.False(t, svc.IsAuthenticated())
	require.Equal(t, models.Guest(), svc.Session())
}

func TestForceLogout_NavigatesToLogin(t *testing.T) {
	t.Parallel()

	stored := models.Session{Token: "abc", Role: models.RoleUser, UserID: "1"}
	svc, st, _, nav := newSvc(t, stored)

	st.EXPECT().Clear().Return(nil)
	nav.EXPECT().NavigateTo(authz.RouteLogin)

	svc.ForceLogout()

	require.False(t, svc.IsAuthenticated())
}

// 401 может прилететь из нескольких контроллеров одновременно —
// повторная очистка безвредна.
func TestForceLogout_Idempotent(t *testing.T) {
	t.Parallel()

	stored := models.Session{Token: "abc", Role: models.RoleUser, UserID: "1"}
	svc, st, _, nav := newSvc(t, stored)

	st.EXPECT().Clear().Return(nil).Times(3)
	nav.EXPECT().NavigateTo(authz.RouteLogin).Times(3)

	done := make(chan struct{}, 3)
	for i := 0; i < 3; i++ {
		go func() {
			svc.ForceLogout()
			done <- struct{}{}
		}()
	}
	for i := 0; i < 3; i++ {
		<-done
	}

	require.False(t, svc.IsAuthenticated())
}
