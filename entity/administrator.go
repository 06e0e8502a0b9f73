package entity

// Administrator shares its primary key with the user it promotes
// (admin id == user id).
type Administrator struct {
	ID         uint       `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Department Department `gorm:"not null" json:"department"`
}
