package models

import "strconv"

// Workshop — автомастерская.
type Workshop struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	City     string `json:"city"`
	Location string `json:"location"`
	Phone    string `json:"phone"`
	// Номер торгового реестра; бэкенд требует его при регистрации мастерской.
	CommercialRegistrationNumber string `json:"commercial_registration_number"`
	OwnerID                      int64  `json:"owner_id"`
}

func (w Workshop) ItemID() string { return strconv.FormatInt(w.ID, 10) }
