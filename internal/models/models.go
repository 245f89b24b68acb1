package models

type Product struct {
	ID          uint    `gorm:"primaryKey"  json:"id"`
	Name        string  `gorm:"not null"    json:"name"`
	Price       float64 `gorm:"not null"    json:"price"`
	Image       string  `gorm:"not null"    json:"image"`
	Description string  `gorm:"not null"    json:"description"`
}

type User struct {
	ID           uint   `gorm:"primaryKey"       json:"id"`
	Username     string `gorm:"unique;not null"  json:"username"`
	PasswordHash string `gorm:"not null"         json:"-"`
}
