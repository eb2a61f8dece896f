package models

import (
	"time"
)

// 支持的货币与语言
var (
	SupportedCurrencies = []string{"USD", "EUR", "GBP", "JPY", "CAD", "AUD", "CHF", "CNY", "INR"}
	SupportedLanguages  = []string{"en", "es", "fr", "de", "it", "pt", "ru", "ja", "ko", "zh"}
)

// Preferences 用户偏好设置
type Preferences struct {
	Currency      string `json:"currency" gorm:"size:3;default:USD"`
	Notifications bool   `json:"notifications" gorm:"default:true"`
	BiometricAuth bool   `json:"biometricAuth" gorm:"default:false"`
	DarkMode      bool   `json:"darkMode" gorm:"default:false"`
	Language      string `json:"language" gorm:"size:5;default:en"`
}

// DefaultPreferences 新用户的默认偏好
func DefaultPreferences() Preferences {
	return Preferences{
		Currency:      "USD",
		Notifications: true,
		Language:      "en",
	}
}

// User 用户模型
type User struct {
	ID              uint        `json:"id" gorm:"primaryKey"`
	Name            string      `json:"name" gorm:"size:50;not null"`
	Email           string      `json:"email" gorm:"uniqueIndex;size:100;not null"`
	Password        string      `json:"-" gorm:"size:255;not null"`
	IsEmailVerified bool        `json:"isEmailVerified" gorm:"default:false"`
	Avatar          string      `json:"avatar" gorm:"size:255"`
	IsPremium       bool        `json:"isPremium" gorm:"default:false"`
	JoinDate        time.Time   `json:"joinDate"`
	Preferences     Preferences `json:"preferences" gorm:"embedded;embeddedPrefix:pref_"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// TableName 设置表名
func (User) TableName() string {
	return "users"
}
