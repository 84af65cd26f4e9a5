package models

import "strconv"

// User — пользователь системы (видим админ-панели).
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func (u User) ItemID() string { return strconv.FormatInt(u.ID, 10) }
