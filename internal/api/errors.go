package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthenticated — запрос отклонён по авторизации (401) либо
	// для защищённой операции нет токена. Реакция на эту ошибку —
	// принудительный logout — принадлежит вызывающему слою.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrNotFound — ресурс не найден (404).
	ErrNotFound = errors.New("not found")
)

// ValidationError — ошибка валидации полей (422).
// Fields — карта "поле → сообщения", как её присылает бэкенд;
// показывается пользователю по полям, фатальной не считается.
type ValidationError struct {
	Message string
	Fields  map[string][]string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("validation failed: %s", e.Message)
	}

	return "validation failed"
}

// StatusError — прочие не-2xx ответы бэкенда.
type StatusError struct {
	StatusCode int
	Code       string
	Message    string
	RequestID  string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
	}

	return fmt.Sprintf("api: unexpected status %d", e.StatusCode)
}

// errorFromResponse разбирает тело не-2xx ответа.
// Поддерживаются оба формата бэкенда:
//   - {"error":{"code":...,"message":...,"request_id":...}}
//   - {"message":...,"errors":{"field":["..."]}} (валидация, 422)
//
// Нечитаемое тело не считается ошибкой разбора — возвращается
// StatusError с одним лишь статусом.
func errorFromResponse(status int, body []byte) error {
	switch status {
	case http.StatusUnauthorized:
		return ErrUnauthenticated
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnprocessableEntity:
		var p struct {
			Message string              `json:"message"`
			Errors  map[string][]string `json:"errors"`
		}
		_ = json.Unmarshal(body, &p)

		return &ValidationError{Message: p.Message, Fields: p.Errors}
	}

	var p struct {
		Error struct {
			Code      string `json:"code"`
			Message   string `json:"message"`
			RequestID string `json:"request_id"`
		} `json:"error"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &p)

	msg := p.Error.Message
	if msg == "" {
		msg = p.Message
	}

	return &StatusError{
		StatusCode: status,
		Code:       p.Error.Code,
		Message:    msg,
		RequestID:  p.Error.RequestID,
	}
}
