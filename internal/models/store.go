package models

import "strconv"

// Store — магазин запчастей/автосалон.
type Store struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Website     string `json:"website"`
	Status      string `json:"status"`
	OwnerID     int64  `json:"owner_id"`
}

func (s Store) ItemID() string { return strconv.FormatInt(s.ID, 10) }
