package models

// Product is a catalog row. The store assigns ID on insert; Version backs the
// concurrency guard on updates and never leaves the API.
type Product struct {
	ID      uint    `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name    string  `gorm:"not null"                  json:"name"`
	Price   float64 `gorm:"not null"                  json:"price"`
	Version int64   `gorm:"not null;default:1"        json:"-"`
}
