package authz

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Moayad7/syriacar/internal/models"
)

func guest() models.Session {
	return models.Guest()
}

func as(role models.Role) models.Session {
	return models.Session{Token: "tok", Role: role, UserID: "1"}
}

func TestDecide(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		policy AccessPolicy
		sess   models.Session
		want   Verdict
	}{
		{"public_guest", Public(), guest(), VerdictAllow},
		{"public_authenticated", Public(), as(models.RoleUser), VerdictAllow},
		{"auth_guest", RequiresAuth(), guest(), VerdictRedirectLogin},
		{"auth_user", RequiresAuth(), as(models.RoleUser), VerdictAllow},
		{"auth_admin", RequiresAuth(), as(models.RoleAdmin), VerdictAllow},
		{"role_guest", RequiresRole(models.RoleAdmin), guest(), VerdictRedirectLogin},
		{"role_wrong", RequiresRole(models.RoleAdmin), as(models.RoleUser), VerdictRedirectHome},
		{"role_match", RequiresRole(models.RoleAdmin), as(models.RoleAdmin), VerdictAllow},
		{"role_any_of", RequiresRole(models.RoleWorkshop, models.RoleAdmin), as(models.RoleWorkshop), VerdictAllow},
		{"role_unknown_role", RequiresRole(models.RoleAdmin), as(models.Role("intern")), VerdictRedirectHome},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, Decide(tc.policy, tc.sess))
		})
	}
}

func TestGuard_RedirectLogin_RecordsFrom(t *testing.T) {
	t.Parallel()

	g := NewGuard(Routes())

	d := g.Check("/user-dashboard", guest())
	require.Equal(t, VerdictRedirectLogin, d.Verdict)
	require.Equal(t, RouteLogin, d.RedirectTo)
	require.Equal(t, "/user-dashboard", d.From)
	require.False(t, d.Allowed())
}

func TestGuard_AdminSubtree_RoleGated(t *testing.T) {
	t.Parallel()

	g := NewGuard(Routes())

	// Гость — на логин.
	d := g.Check("/admin/users", guest())
	require.Equal(t, VerdictRedirectLogin, d.Verdict)

	// Обычный пользователь — домой, а не на логин.
	d = g.Check("/admin/users", as(models.RoleUser))
	require.Equal(t, VerdictRedirectHome, d.Verdict)
	require.Equal(t, RouteHome, d.RedirectTo)

	// Админ проходит.
	require.True(t, g.Check("/admin/users", as(models.RoleAdmin)).Allowed())
}

func TestGuard_PublicAndUnknownRoutes(t *testing.T) {
	t.Parallel()

	g := NewGuard(Routes())

	require.True(t, g.Check("/car-listings", guest()).Allowed())
	require.True(t, g.Check(RouteLogin, guest()).Allowed())
	// Неизвестный маршрут — вопрос 404-страницы, не авторизации.
	require.True(t, g.Check("/no-such-route", guest()).Allowed())
}

func TestGuard_WorkshopDashboard(t *testing.T) {
	t.Parallel()

	g := NewGuard(Routes())

	require.True(t, g.Check("/workshops-dashboard", as(models.RoleWorkshop)).Allowed())
	require.True(t, g.Check("/workshops-dashboard", as(models.RoleAdmin)).Allowed())
	require.Equal(t, VerdictRedirectHome, g.Check("/workshops-dashboard", as(models.RoleUser)).Verdict)
}
