package entity

import "time"

type Report struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"not null" json:"description"`
	Status      Status     `gorm:"not null;default:open" json:"status"`
	Category    Category   `gorm:"not null;default:other" json:"category"`
	CreatedBy   uint       `gorm:"index" json:"created_by"`
	ValidatedBy *uint      `json:"validated_by"`
	ResolvedBy  *uint      `json:"resolved_by"`
	CreatedAt   time.Time  `json:"created_at"`
	ResolvedAt  *time.Time `json:"resolved_at"`
	LocationID  *uint      `gorm:"column:location" json:"location"`
	ImageURL    *string    `json:"image_url"`

	// Rating is the cached count of report_ratings rows for this report.
	// It must stay equal to the true row count after every toggle.
	Rating int `gorm:"not null;default:0" json:"rating"`
}
