package model

type User struct {
	ID           string `gorm:"primaryKey;size:32" json:"id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	CreatedAt    int64  `gorm:"not null" json:"-"`
}
