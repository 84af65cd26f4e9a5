package models

// Role — роль пользователя в системе.
// Сервер присылает роль строкой; неизвестные значения не считаются
// ошибкой и сохраняются как есть, но прав они не дают.
type Role string

const (
	RoleGuest       Role = "guest"
	RoleUser        Role = "user"
	RoleShopManager Role = "shop_manager"
	RoleWorkshop    Role = "workshop"
	RoleAdmin       Role = "admin"
)

// Session — аутентификационные данные текущего пользователя.
// Инвариант: Token == "" ⇔ Role == RoleGuest ⇔ UserID == "".
// Token — непрозрачная строка, клиент не интерпретирует её содержимое
// (кроме необязательной проверки exp, если токен оказался JWT).
type Session struct {
	Token  string `json:"token"`
	Role   Role   `json:"role"`
	UserID string `json:"user_id"`
}

// Guest возвращает неаутентифицированную сессию.
func Guest() Session {
	return Session{Role: RoleGuest}
}

// Authenticated сообщает, есть ли в сессии токен.
// Источник истины — именно токен, а не роль (см. инвариант выше).
func (s Session) Authenticated() bool {
	return s.Token != ""
}
