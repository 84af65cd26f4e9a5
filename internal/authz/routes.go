package authz

import "github.com/Moayad7/syriacar/internal/models"

// Маршруты, на которые ссылаются навигационные побочные эффекты.
const (
	RouteHome  = "/"
	RouteLogin = "/login"
)

// Routes — таблица доступа всех видов приложения.
//
// Публичные — витрины и поиск; добавление/редактирование и личные
// кабинеты требуют входа; поддерево /admin закрыто ролью admin
// (в исходном приложении роль проверялась строкой в момент рендера,
// здесь это закрыто политикой).
func Routes() map[string]AccessPolicy {
	return map[string]AccessPolicy{
		RouteHome:          Public(),
		RouteLogin:         Public(),
		"/register":        Public(),
		"/car-listings":    Public(),
		"/car":             Public(),
		"/rentals":         Public(),
		"/spare-parts":     Public(),
		"/stores":          Public(),
		"/workshops":       Public(),
		"/know-your-needs": Public(),
		"/searchResults":   Public(),

		"/add-car":         RequiresAuth(),
		"/edit-car":        RequiresAuth(),
		"/add-store":       RequiresAuth(),
		"/edit-store":      RequiresAuth(),
		"/add-workshop":    RequiresAuth(),
		"/add-workshop-ad": RequiresAuth(),
		"/edit-workshop":   RequiresAuth(),
		"/inspction":       RequiresAuth(),
		"/user-dashboard":  RequiresAuth(),

		"/workshops-dashboard": RequiresRole(models.RoleWorkshop, models.RoleAdmin),

		"/admin":            RequiresRole(models.RoleAdmin),
		"/admin/users":      RequiresRole(models.RoleAdmin),
		"/admin/cars":       RequiresRole(models.RoleAdmin),
		"/admin/stores":     RequiresRole(models.RoleAdmin),
		"/admin/categories": RequiresRole(models.RoleAdmin),
		"/admin/workshops":  RequiresRole(models.RoleAdmin),
	}
}
