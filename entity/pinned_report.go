package entity

import "time"

// PinnedReport is the user-to-report bookmark relation. Inserts are
// idempotent on the composite key.
type PinnedReport struct {
	UserID   uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	ReportID uint      `gorm:"primaryKey;autoIncrement:false" json:"report_id"`
	PinnedAt time.Time `gorm:"autoCreateTime" json:"pinned_at"`
}
