package entity

// DepartmentAdmin assigns an administrator to a department seat.
type DepartmentAdmin struct {
	AdminID    uint       `gorm:"primaryKey;autoIncrement:false" json:"admin_id"`
	Department Department `gorm:"not null" json:"department"`
}
