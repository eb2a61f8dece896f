package client

import (
	"context"
	"net/http"
	"time"
)

// Preferences 用户偏好
type Preferences struct {
	Currency      string `json:"currency"`
	Notifications bool   `json:"notifications"`
	BiometricAuth bool   `json:"biometricAuth"`
	DarkMode      bool   `json:"darkMode"`
	Language      string `json:"language"`
}

// User 服务端返回的用户信息
type User struct {
	ID              uint        `json:"id"`
	Name            string      `json:"name"`
	Email           string      `json:"email"`
	IsEmailVerified bool        `json:"isEmailVerified"`
	Avatar          string      `json:"avatar,omitempty"`
	IsPremium       bool        `json:"isPremium"`
	JoinDate        time.Time   `json:"joinDate"`
	Preferences     Preferences `json:"preferences"`
}

// AuthResult 登录/验证邮箱的结果
type AuthResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// RegisterResult 注册结果，注册不会自动登录
type RegisterResult struct {
	User      User `json:"user"`
	EmailSent bool `json:"emailSent"`
}

// Login 登录，成功后自动保存 token
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var res AuthResult
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &res); err != nil {
		return nil, err
	}
	c.SetToken(res.Token)
	return &res, nil
}

// Register 注册新用户
func (c *Client) Register(ctx context.Context, name, email, password string) (*RegisterResult, error) {
	var res RegisterResult
	body := map[string]string{"name": name, "email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// VerifyEmail 使用邮件中的 token 验证邮箱，成功后自动登录
func (c *Client) VerifyEmail(ctx context.Context, token string) (*AuthResult, error) {
	var res AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/verify-email", nil, map[string]string{"token": token}, &res); err != nil {
		return nil, err
	}
	c.SetToken(res.Token)
	return &res, nil
}

// ResendVerification 重新发送验证邮件
func (c *Client) ResendVerification(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/auth/resend-verification", nil, map[string]string{"email": email}, nil)
}

// ForgotPassword 请求密码重置邮件
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/auth/forgot-password", nil, map[string]string{"email": email}, nil)
}

// ResetPassword 使用重置 token 设置新密码
func (c *Client) ResetPassword(ctx context.Context, token, password string) error {
	body := map[string]string{"token": token, "password": password}
	return c.do(ctx, http.MethodPost, "/auth/reset-password", nil, body, nil)
}

// Me 校验当前 token 并返回用户
func (c *Client) Me(ctx context.Context) (*User, error) {
	var res struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/verify", nil, nil, &res); err != nil {
		return nil, err
	}
	return &res.User, nil
}

// Logout 登出并清除本地 token
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
	c.SetToken("")
	return err
}
