package entity

import "time"

// ReportRating records that a user starred a report. One row per
// (report, user) pair; the report's cached counter must always match
// the number of rows here.
type ReportRating struct {
	ReportID uint      `gorm:"primaryKey;autoIncrement:false" json:"report_id"`
	UserID   uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	RatedAt  time.Time `gorm:"autoCreateTime" json:"rated_at"`
}
