// authz — гейт доступа к маршрутам приложения.
//
// Политика доступа — тегированный вариант: Public / RequiresAuth /
// RequiresRole(набор ролей). Решение принимает одна функция Decide;
// никаких ad hoc проверок роли в момент рендера по месту.
package authz

import (
	"github.com/Moayad7/syriacar/internal/models"
)

// Verdict — исход проверки доступа.
type Verdict int

const (
	// VerdictAllow — маршрут можно показывать.
	VerdictAllow Verdict = iota
	// VerdictRedirectLogin — пользователь не аутентифицирован,
	// жёсткий переход на страницу входа.
	VerdictRedirectLogin
	// VerdictRedirectHome — аутентифицирован, но роль не подходит.
	VerdictRedirectHome
)

// Decision — решение гарда по одному переходу.
// From заполняется при редиректе на логин: успешный вход может
// вернуть пользователя на исходно запрошенный маршрут.
type Decision struct {
	Verdict    Verdict
	RedirectTo string
	From       string
}

// Allowed сообщает, разрешён ли переход.
func (d Decision) Allowed() bool { return d.Verdict == VerdictAllow }

type policyKind int

const (
	kindPublic policyKind = iota
	kindRequiresAuth
	kindRequiresRole
)

// AccessPolicy — требование доступа одного маршрута.
type AccessPolicy struct {
	kind  policyKind
	roles map[models.Role]struct{}
}

// Public — маршрут доступен всем, включая гостей.
func Public() AccessPolicy {
	return AccessPolicy{kind: kindPublic}
}

// RequiresAuth — маршрут требует любой аутентифицированной сессии.
func RequiresAuth() AccessPolicy {
	return AccessPolicy{kind: kindRequiresAuth}
}

// RequiresRole — маршрут требует аутентификации и одной из ролей.
func RequiresRole(roles ...models.Role) AccessPolicy {
	set := make(map[models.Role]struct{}, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}

	return AccessPolicy{kind: kindRequiresRole, roles: set}
}

// Decide применяет политику к сессии.
//
// Гард никогда не отдаёт частично защищённое содержимое: либо Allow,
// либо немедленный редирект. Неаутентифицированный доступ к любому
// защищённому маршруту — всегда VerdictRedirectLogin; подходящая
// аутентификация, но не та роль — VerdictRedirectHome.
func Decide(p AccessPolicy, sess models.Session) Verdict {
	switch p.kind {
	case kindPublic:
		return VerdictAllow
	case kindRequiresAuth:
		if sess.Authenticated() {
			return VerdictAllow
		}

		return VerdictRedirectLogin
	case kindRequiresRole:
		if !sess.Authenticated() {
			return VerdictRedirectLogin
		}
		if _, ok := p.roles[sess.Role]; ok {
			return VerdictAllow
		}

		return VerdictRedirectHome
	}

	return VerdictRedirectHome
}

// Guard держит таблицу маршрутов приложения и превращает вердикты
// в конкретные решения с целевым маршрутом редиректа.
type Guard struct {
	routes map[string]AccessPolicy
}

// NewGuard создаёт гард поверх таблицы маршрутов.
func NewGuard(routes map[string]AccessPolicy) *Guard {
	return &Guard{routes: routes}
}

// Check — решение по переходу на route при данной сессии.
// Неизвестный маршрут считается публичным (его судьба — страница 404,
// это не вопрос авторизации).
func (g *Guard) Check(route string, sess models.Session) Decision {
	policy, ok := g.routes[route]
	if !ok {
		policy = Public()
	}

	switch Decide(policy, sess) {
	case VerdictRedirectLogin:
		return Decision{
			Verdict:    VerdictRedirectLogin,
			RedirectTo: RouteLogin,
			From:       route,
		}
	case VerdictRedirectHome:
		return Decision{
			Verdict:    VerdictRedirectHome,
			RedirectTo: RouteHome,
		}
	default:
		return Decision{Verdict: VerdictAllow}
	}
}
