package entity

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Password     string    `gorm:"not null" json:"-"`
	Admin        bool      `gorm:"not null;default:false" json:"admin"`
	Suspended    bool      `gorm:"not null;default:false" json:"suspended"`
	Pinned       bool      `gorm:"not null;default:false" json:"pinned"`
	TotalReports int       `gorm:"not null;default:0" json:"total_reports"`
	CreatedAt    time.Time `json:"created_at"`
}
