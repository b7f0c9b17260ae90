package models

type Expense struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        int64   `json:"date"` // epoch ms
	Category    string  `json:"category,omitempty"`
}
