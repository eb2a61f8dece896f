package models

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// EmailVerification 邮箱验证令牌模型
type EmailVerification struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"index;not null"`
	Email     string    `json:"email" gorm:"index;size:100;not null"`
	Token     string    `json:"-" gorm:"uniqueIndex;size:64;not null"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"not null"`
	Used      bool      `json:"used" gorm:"default:false"`
	CreatedAt time.Time `json:"createdAt"`
	User      User      `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (EmailVerification) TableName() string {
	return "email_verifications"
}

// IsExpired 检查令牌是否过期
func (e *EmailVerification) IsExpired() bool {
	return time.Now().After(e.ExpiresAt)
}

// IsValid 检查令牌是否有效
func (e *EmailVerification) IsValid() bool {
	return !e.Used && !e.IsExpired()
}

// NewEmailVerification 为用户生成一条 ttl 内有效的验证令牌
func NewEmailVerification(user *User, ttl time.Duration) (*EmailVerification, error) {
	token, err := GenerateToken()
	if err != nil {
		return nil, err
	}
	return &EmailVerification{
		UserID:    user.ID,
		Email:     user.Email,
		Token:     token,
		ExpiresAt: time.Now().Add(ttl),
	}, nil
}

// GenerateToken 生成 32 字节随机令牌（hex 编码，64 字符）
func GenerateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := randRead(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// 为了使用 crypto/rand，测试中可替换
var randRead = func(b []byte) (int, error) {
	return rand.Read(b)
}
