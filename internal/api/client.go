// api — HTTP-клиент внешнего REST-бэкенда маркетплейса.
//
// Клиент не владеет сессией: токен читается через TokenFunc в момент
// отправки каждого запроса (состояние сессии могло измениться между
// запросами, см. гонку 401 в разных контроллерах). Bearer-заголовок —
// производное значение, нигде не хранится.
//
// Реакция на 401: если запрос уходил с токеном, вызывается
// unauthorized-хук (обычно auth.Service.ForceLogout), после чего
// возвращается ErrUnauthenticated. 401 на /auth/* хук не трогает —
// это обычная ошибка учётных данных.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Moayad7/syriacar/internal/pkg/log"
	"github.com/Moayad7/syriacar/internal/pkg/redact"
)

// TokenFunc возвращает текущий токен сессии ("" — гость).
type TokenFunc func() string

// Client — клиент REST-бэкенда.
type Client struct {
	baseURL        *url.URL
	httpc          *http.Client
	token          TokenFunc
	onUnauthorized func()
}

// Option настраивает Client.
type Option func(*Client)

// WithHTTPClient подменяет транспорт (таймауты, прокси, тесты).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpc = h }
}

// WithTokenSource задаёт источник токена.
func WithTokenSource(fn TokenFunc) Option {
	return func(c *Client) { c.token = fn }
}

// WithUnauthorizedHook задаёт реакцию на 401 по аутентифицированному
// запросу. Хук обязан быть идемпотентным: несколько контроллеров могут
// получить 401 одновременно.
func WithUnauthorizedHook(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// New создаёт клиент. timeout — таймаут одного запроса; 0 — дефолт 15s.
func New(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("api: parse base url: %w", err)
	}

	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("api: base url %q: scheme and host required", baseURL)
	}

	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	c := &Client{
		baseURL: u,
		httpc:   &http.Client{Timeout: timeout},
		token:   func() string { return "" },
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// do собирает, отправляет и разбирает один запрос.
//
// needAuth — операция требует токена: без него запрос не уходит в сеть
// вовсе (fail fast), возвращается ErrUnauthenticated. Токен, если он
// есть, прикладывается и к публичным запросам — так делал оригинальный
// axios-инстанс.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, needAuth bool) error {
	const op = "api/client/do"

	lg := log.From(ctx)

	token := c.token()
	if needAuth && token == "" {
		return fmt.Errorf("%s: %s %s: %w", op, method, path, ErrUnauthenticated)
	}

	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: marshal body: %w", op, err)
		}
		rd = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), rd)
	if err != nil {
		return fmt.Errorf("%s: new_request: %w", op, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	authHdr := ""
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
		authHdr = redact.Token()
	}

	lg.Debug("http_request",
		slog.String("op", op),
		slog.String("method", method),
		slog.String("path", path),
		slog.String("authorization", authHdr),
	)

	resp, err := c.httpc.Do(req)
	if err != nil {
		lg.Warn("http_error",
			slog.String("op", op),
			slog.String("method", method),
			slog.String("path", path),
			slog.String("err", err.Error()),
		)

		return fmt.Errorf("%s: %s %s: %w", op, method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("%s: read body: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := errorFromResponse(resp.StatusCode, raw)

		// 401 на /auth/* — неверные учётные данные, а не протухшая
		// сессия: хук молчит, даже если токен был приложен.
		if resp.StatusCode == http.StatusUnauthorized && token != "" && !strings.HasPrefix(path, "/auth/") {
			lg.Warn("unauthorized_response",
				slog.String("op", op),
				slog.String("method", method),
				slog.String("path", path),
			)
			if c.onUnauthorized != nil {
				c.onUnauthorized()
			}
		}

		return fmt.Errorf("%s: %s %s: %w", op, method, path, apiErr)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}

	return nil
}
