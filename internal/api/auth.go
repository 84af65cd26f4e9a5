package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Moayad7/syriacar/internal/models"
)

// Credentials — результат успешного login/register:
// токен плюс идентификация пользователя из ответа бэкенда.
type Credentials struct {
	Token  string
	UserID string
	Role   models.Role
}

// LoginRequest — тело POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest — тело POST /auth/register.
type RegisterRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
	Role                 string `json:"role"`
}

// authPayload — ответ обоих auth-эндпоинтов: { token, user: { id, role } }.
type authPayload struct {
	Token string `json:"token"`
	User  struct {
		ID   int64  `json:"id"`
		Role string `json:"role"`
	} `json:"user"`
}

func (p authPayload) credentials() (*Credentials, error) {
	if p.Token == "" {
		return nil, fmt.Errorf("auth response without token")
	}

	return &Credentials{
		Token:  p.Token,
		UserID: strconv.FormatInt(p.User.ID, 10),
		Role:   models.Role(p.User.Role),
	}, nil
}

// Login выполняет POST /auth/login.
// Неверные учётные данные возвращаются как ErrUnauthenticated
// (без срабатывания unauthorized-хука — запрос шёл без токена).
func (c *Client) Login(ctx context.Context, req LoginRequest) (*Credentials, error) {
	const op = "api/auth/Login"

	var p authPayload
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, req, &p, false); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	creds, err := p.credentials()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return creds, nil
}

// Register выполняет POST /auth/register. Успешная регистрация сразу
// возвращает токен — сессия устанавливается так же, как после login.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*Credentials, error) {
	const op = "api/auth/Register"

	var p authPayload
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, req, &p, false); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	creds, err := p.credentials()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return creds, nil
}
