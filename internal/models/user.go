package models

type User struct {
	BaseModel
	Name         string     `json:"name" gorm:"type:varchar(100);not null"`
	Email        string     `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"type:text;not null"`
	Phone        string     `json:"phone" gorm:"type:varchar(30);not null"`
	AvatarURL    string     `json:"avatar" gorm:"type:text"`
	Donations    []Donation `json:"-" gorm:"foreignKey:UserID"`
}
