package models

import "time"

type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	FullName  string `gorm:"type:varchar(255);not null" json:"full_name"`
	Email     string `gorm:"type:varchar(255);unique;not null" json:"email"`
	Password  string `gorm:"type:varchar(255);not null" json:"-"`
	Role      string `gorm:"type:varchar(20);not null" json:"role"` // manager, staff, customer
	CreatedAt time.Time
	UpdatedAt time.Time
}
