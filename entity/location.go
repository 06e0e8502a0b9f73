package entity

type Location struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	City      string  `gorm:"not null" json:"city"`
	Latitude  float64 `gorm:"not null" json:"latitude"`
	Longitude float64 `gorm:"not null" json:"longitude"`
}

func (Location) TableName() string {
	return "location"
}
