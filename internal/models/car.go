package models

import "strconv"

// Car — объявление о продаже автомобиля.
// Набор полей зеркалит payload бэкенда; ID приходит числом,
// наружу отдаётся строкой — клиент использует его только в путях URL.
type Car struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Brand        string  `json:"brand"`
	Model        string  `json:"model"`
	Year         int     `json:"year"`
	Price        float64 `json:"price"`
	Mileage      int     `json:"mileage"`
	FuelType     string  `json:"fuel_type"`
	Transmission string  `json:"transmission"`
	Color        string  `json:"color"`
	Location     string  `json:"location"`
	Description  string  `json:"description"`
	Status       string  `json:"status"`
	OwnerID      int64   `json:"owner_id"`
	ImageURL     string  `json:"image_url"`
}

func (c Car) ItemID() string { return strconv.FormatInt(c.ID, 10) }
