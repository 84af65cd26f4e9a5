// session задаёт контракт долговременного хранилища сессии —
// клиентского аналога localStorage с тремя ключами: token, role, user_id.
//
// Хранилище — единственный разделяемый мутабельный ресурс клиента.
// Писать в него разрешено только auth.Service (login/logout); остальные
// компоненты читают токен через Read и никогда не пишут напрямую.
package session

import (
	"errors"

	"github.com/Moayad7/syriacar/internal/models"
)

//go:generate mockgen -source=session.go -destination=../../mocks/mock_session.go -package=mocks

var (
	// ErrUnavailable — хранилище недоступно (нет прав на каталог и т.п.).
	// Считается фатальным предусловием окружения, а не ошибкой выполнения.
	ErrUnavailable = errors.New("session storage unavailable")
)

// Store — операции над персистентной сессией.
type Store interface {
	// Write сохраняет все три значения, перезаписывая прежние.
	// Формат токена не валидируется.
	Write(s models.Session) error
	// Read возвращает сохранённую сессию. Если токен отсутствует,
	// возвращается гостевая сессия независимо от того, остались ли
	// в хранилище значения role/user_id (токен — источник истины).
	Read() (models.Session, error)
	// Clear удаляет все три значения. Идемпотентна.
	Clear() error
}
