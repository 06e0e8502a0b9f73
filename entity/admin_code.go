package entity

// AdminCode maps a redemption code to the department the redeeming user
// is promoted into.
type AdminCode struct {
	Code       string     `gorm:"primaryKey" json:"code"`
	Department Department `gorm:"not null" json:"department"`
}
