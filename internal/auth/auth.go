// auth — владелец жизненного цикла сессии: вход, регистрация, выход.
//
// Service — единственный компонент, которому разрешено писать в
// session.Store. Списочные контроллеры читают токен и реагируют на 401
// вызовом ForceLogout; прямой записи в хранилище у них нет.
//
// Машина состояний — два состояния, Anonymous и Authenticated;
// стартовое вычисляется синхронно из хранилища при создании Service.
// Валидность токена при старте не проверяется сетевым запросом —
// сессии доверяем до первого 401. Единственное локальное улучшение:
// если сохранённый токен — JWT с уже истёкшим exp, сессия чистится
// сразу (см. token.go); непрозрачные токены доверяются как раньше.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Moayad7/syriacar/internal/api"
	"github.com/Moayad7/syriacar/internal/authz"
	"github.com/Moayad7/syriacar/internal/models"
	"github.com/Moayad7/syriacar/internal/pkg/log"
	"github.com/Moayad7/syriacar/internal/pkg/redact"
	"github.com/Moayad7/syriacar/internal/session"
)

//go:generate mockgen -source=auth.go -destination=../../mocks/mock_auth.go -package=mocks

var (
	// ErrInvalidCredentials — бэкенд отклонил пару email/пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrPasswordMismatch — пароль и подтверждение не совпадают.
	ErrPasswordMismatch = errors.New("password confirmation mismatch")
)

// AuthAPI — нужная сервису часть клиента бэкенда.
type AuthAPI interface {
	Login(ctx context.Context, req api.LoginRequest) (*api.Credentials, error)
	Register(ctx context.Context, req api.RegisterRequest) (*api.Credentials, error)
}

// Navigator — навигационный побочный эффект login/logout.
// В браузере это был router; здесь — порт, который приложение
// реализует как ему удобно.
type Navigator interface {
	NavigateTo(route string)
}

// Service — авторитетное in-memory зеркало аутентификационного
// состояния. Потокобезопасен.
type Service struct {
	store session.Store
	api   AuthAPI
	nav   Navigator

	mu   sync.Mutex
	sess models.Session
}

// New создаёт сервис и синхронно восстанавливает состояние из
// хранилища. Просроченный JWT-токен чистится на месте.
func New(store session.Store, authAPI AuthAPI, nav Navigator) (*Service, error) {
	const op = "auth/New"

	sess, err := store.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if sess.Authenticated() && tokenExpired(sess.Token, time.Now()) {
		if err := store.Clear(); err != nil {
			return nil, fmt.Errorf("%s: clear expired session: %w", op, err)
		}
		sess = models.Guest()
	}

	return &Service{
		store: store,
		api:   authAPI,
		nav:   nav,
		sess:  sess,
	}, nil
}

// IsAuthenticated — реактивный флаг для гарда и UI.
func (s *Service) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sess.Authenticated()
}

// Session возвращает копию текущей сессии.
func (s *Service) Session() models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sess
}

// Login аутентифицирует пользователя: один запрос к бэкенду, затем
// атомарная запись всех трёх значений сессии и навигация на главную.
// Ошибки бэкенда (сеть, 422, неверные данные) наружу — их показывает
// вызывающий; состояние при ошибке не меняется.
func (s *Service) Login(ctx context.Context, email, password string) error {
	const op = "auth/Login"

	lg := log.From(ctx)

	creds, err := s.api.Login(ctx, api.LoginRequest{Email: email, Password: password})
	if err != nil {
		if errors.Is(err, api.ErrUnauthenticated) {
			lg.Warn("login_rejected",
				slog.String("op", op),
				slog.String("email", redact.Email(email)),
			)

			return fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.establish(creds); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	lg.Info("login_ok",
		slog.String("op", op),
		slog.String("email", redact.Email(email)),
		slog.String("role", string(creds.Role)),
		slog.String("user_id", creds.UserID),
	)

	s.nav.NavigateTo(authz.RouteHome)

	return nil
}

// Register регистрирует пользователя и сразу устанавливает сессию,
// как после Login.
func (s *Service) Register(ctx context.Context, req api.RegisterRequest) error {
	const op = "auth/Register"

	if req.Password != req.PasswordConfirmation {
		return fmt.Errorf("%s: %w", op, ErrPasswordMismatch)
	}

	lg := log.From(ctx)

	creds, err := s.api.Register(ctx, req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.establish(creds); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	lg.Info("register_ok",
		slog.String("op", op),
		slog.String("email", redact.Email(req.Email)),
		slog.String("role", string(creds.Role)),
	)

	s.nav.NavigateTo(authz.RouteHome)

	return nil
}

// Logout чистит сессию и уводит на главную. Ошибок не возвращает:
// недоступное хранилище при выходе лечить нечем, in-memory состояние
// сбрасывается в любом случае.
func (s *Service) Logout() {
	s.drop()
	s.nav.NavigateTo(authz.RouteHome)
}

// ForceLogout — реакция на 401 от любого запроса: идемпотентная
// очистка сессии и жёсткий переход на страницу входа. Повторные
// вызовы из гонящихся контроллеров безвредны.
func (s *Service) ForceLogout() {
	s.drop()
	s.nav.NavigateTo(authz.RouteLogin)
}

// Token отдаёт текущий токен; подключается к api.Client как TokenFunc.
func (s *Service) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sess.Token
}

func (s *Service) establish(creds *api.Credentials) error {
	sess := models.Session{
		Token:  creds.Token,
		Role:   creds.Role,
		UserID: creds.UserID,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Write(sess); err != nil {
		return err
	}
	s.sess = sess

	return nil
}

func (s *Service) drop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.store.Clear()
	s.sess = models.Guest()
}
