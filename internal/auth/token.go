package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpired сообщает, истёк ли exp сохранённого токена.
//
// Подпись не проверяется — секрет есть только у бэкенда, клиенту
// доступен лишь разбор claims. Токен, который не парсится как JWT,
// считается непрозрачным и живым: решает первый 401 от сервера.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())

	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return exp.Before(now)
}
