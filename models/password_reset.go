package models

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// PasswordReset 密码重置令牌模型
// 数据库中只保存令牌的 SHA-256 摘要，明文令牌仅出现在邮件中
type PasswordReset struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"index;not null"`
	TokenHash string    `json:"-" gorm:"uniqueIndex;size:64;not null"`
	Email     string    `json:"email" gorm:"size:100;not null"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"not null"`
	Used      bool      `json:"used" gorm:"default:false"`
	CreatedAt time.Time `json:"createdAt"`
	User      User      `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (PasswordReset) TableName() string {
	return "password_resets"
}

// HashResetToken 计算重置令牌摘要
func HashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// NewPasswordReset 生成重置记录，返回记录与明文令牌
func NewPasswordReset(user *User, ttl time.Duration) (*PasswordReset, string, error) {
	token, err := GenerateToken()
	if err != nil {
		return nil, "", err
	}
	return &PasswordReset{
		UserID:    user.ID,
		TokenHash: HashResetToken(token),
		Email:     user.Email,
		ExpiresAt: time.Now().Add(ttl),
	}, token, nil
}

// IsExpired 检查令牌是否过期
func (p *PasswordReset) IsExpired() bool {
	return time.Now().After(p.ExpiresAt)
}

// IsValid 检查令牌是否有效
func (p *PasswordReset) IsValid() bool {
	return !p.Used && !p.IsExpired()
}
