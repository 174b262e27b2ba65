package db_models

type Account struct {
	BaseModel
	Name         string `gorm:"size:120;not null" json:"name"`
	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Phone        string `gorm:"size:32" json:"phone"`
	Role         string `gorm:"size:20;not null;index" json:"role"` // owner | admin | student
}
