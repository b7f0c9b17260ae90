package models

type MenuItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	IsAvailable bool    `json:"isAvailable"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}
