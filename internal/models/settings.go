package models

const DefaultRestaurantName = "RestoSwift POS"

type AppSettings struct {
	RestaurantName string `json:"restaurantName"`
}
