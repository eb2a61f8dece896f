package api

import (
	"errors"
	"log"
	"sync"
	"time"

	"fintrack/config"
	"fintrack/database"
	"fintrack/middleware"
	"fintrack/models"
	"fintrack/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// 统一提示，不暴露账号是否存在
const (
	msgInvalidCredentials = "邮箱或密码错误"
	msgResetRequested     = "如果该邮箱已注册，您将收到密码重置邮件"
	msgVerificationResent = "如果该邮箱已注册且未验证，您将收到新的验证邮件"
	msgInvalidVerifyToken = "验证链接无效或已过期"
	msgInvalidResetToken  = "重置链接无效或已过期"
)

// dummyPasswordHash 邮箱不存在时用于比对的哈希，与真实用户同 cost，两种失败耗时一致
var dummyPasswordHash = sync.OnceValue(func() []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte("fintrack-no-such-user"), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("生成占位密码哈希失败: %v", err)
	}
	return hash
})

// AuthHandler 认证处理器
type AuthHandler struct {
	cfg    *config.Config
	mailer service.Mailer
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		cfg:    cfg,
		mailer: service.NewEmailService(&cfg.Email),
	}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=50" example:"Ann"`
	Email    string `json:"email" binding:"required,email,max=100" example:"ann@example.com"`
	Password string `json:"password" binding:"required,min=6,max=50" example:"password123"`
}

// RegisterResponse 注册响应
type RegisterResponse struct {
	User      models.User `json:"user"`
	EmailSent bool        `json:"emailSent"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"ann@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// AuthResponse 登录/验证邮箱响应
type AuthResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// TokenRequest 携带一次性令牌的请求
type TokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// EmailRequest 只包含邮箱的请求
type EmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest 重置密码请求
type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=6,max=50"`
}

// Register 用户注册
// @Summary 用户注册
// @Description 创建新用户并发送邮箱验证邮件（24 小时有效）。注册后不会自动登录，需先验证邮箱。
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "注册信息"
// @Success 201 {object} Response{data=RegisterResponse} "注册成功"
// @Failure 400 {object} Response "参数错误或邮箱已注册"
// @Failure 500 {object} Response "服务器错误"
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ValidationError(c, err)
		return
	}
	req.Email = normalizeEmail(req.Email)

	// 检查邮箱是否已存在
	var existingUser models.User
	if err := database.DB.Where("email = ?", req.Email).First(&existingUser).Error; err == nil {
		BadRequest(c, "该邮箱已被注册")
		return
	}

	// 加密密码
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		InternalError(c, "密码加密失败")
		return
	}

	user := models.User{
		Name:        req.Name,
		Email:       req.Email,
		Password:    string(hashedPassword),
		JoinDate:    time.Now(),
		Preferences: models.DefaultPreferences(),
	}
	if err := database.DB.Create(&user).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建用户失败"))
		return
	}

	emailSent := h.sendVerification(&user)
	Created(c, "注册成功，请查收验证邮件", RegisterResponse{User: user, EmailSent: emailSent})
}

// sendVerification 生成验证令牌并发送邮件，失败只记录日志
func (h *AuthHandler) sendVerification(user *models.User) bool {
	verification, err := models.NewEmailVerification(user, h.cfg.Auth.VerificationTTL)
	if err != nil {
		log.Printf("生成验证令牌失败: user=%d err=%v", user.ID, err)
		return false
	}
	if err := database.DB.Create(verification).Error; err != nil {
		log.Printf("保存验证令牌失败: user=%d err=%v", user.ID, err)
		return false
	}
	link := h.cfg.Auth.FrontendURL + "/verify-email?token=" + verification.Token
	if err := h.mailer.SendVerificationEmail(user.Email, user.Name, link); err != nil {
		log.Printf("发送验证邮件失败: user=%d err=%v", user.ID, err)
		return false
	}
	return true
}

// Login 用户登录
// @Summary 用户登录
// @Description 使用邮箱和密码登录，返回 30 天有效的 JWT。邮箱未验证时返回 403。
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body LoginRequest true "登录信息"
// @Success 200 {object} Response{data=AuthResponse} "登录成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "邮箱或密码错误"
// @Failure 403 {object} Response "邮箱未验证"
// @Failure 429 {object} Response "尝试过于频繁"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ValidationError(c, err)
		return
	}
	req.Email = normalizeEmail(req.Email)

	var user models.User
	if err := database.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		_ = bcrypt.CompareHashAndPassword(dummyPasswordHash(), []byte(req.Password))
		Unauthorized(c, msgInvalidCredentials)
		return
	}

	// 验证密码
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		Unauthorized(c, msgInvalidCredentials)
		return
	}

	if !user.IsEmailVerified {
		Forbidden(c, "请先验证邮箱后再登录", gin.H{
			"emailVerificationRequired": true,
			"email":                     user.Email,
		})
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, h.cfg.JWT.ExpireTime)
	if err != nil {
		InternalError(c, "生成 token 失败")
		return
	}

	SuccessWithMessage(c, "登录成功", AuthResponse{User: user, Token: token})
}

// VerifyEmail 验证邮箱
// @Summary 验证邮箱
// @Description 使用邮件中的令牌验证邮箱，成功后直接返回登录 token
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body TokenRequest true "验证令牌"
// @Success 200 {object} Response{data=AuthResponse} "验证成功"
// @Failure 400 {object} Response "令牌无效或已过期"
// @Router /api/auth/verify-email [post]
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ValidationError(c, err)
		return
	}

	var verification models.EmailVerification
	if err := database.DB.Where("token = ?", req.Token).First(&verification).Error; err != nil {
		BadRequest(c, msgInvalidVerifyToken)
		return
	}
	if !verification.IsValid() {
		BadRequest(c, msgInvalidVerifyToken)
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&verification).Update("used", true).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", verification.UserID).
			Update("is_email_verified", true).Error
	})
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "验证邮箱失败"))
		return
	}

	var user models.User
	if err := database.DB.First(&user, verification.UserID).Error; err != nil {
		NotFound(c, "用户不存在")
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, h.cfg.JWT.ExpireTime)
	if err != nil {
		InternalError(c, "生成 token 失败")
		return
	}

	SuccessWithMessage(c, "邮箱验证成功", AuthResponse{User: user, Token: token})
}

// ResendVerification 重新发送验证邮件
// @Summary 重新发送验证邮件
// @Description 为未验证的账号重新生成验证令牌（旧令牌作废）。无论邮箱是否存在都返回相同提示。
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body EmailRequest true "邮箱地址"
// @Success 200 {object} Response "请求成功"
// @Failure 400 {object} Response "参数错误"
// @Router /api/auth/resend-verification [post]
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ValidationError(c, err)
		return
	}

	var user models.User
	err := database.DB.Where("email = ?", normalizeEmail(req.Email)).First(&user).Error
	if err != nil || user.IsEmailVerified {
		SuccessWithMessage(c, msgVerificationResent, nil)
		return
	}

	// 作废旧令牌
	if err := database.DB.Model(&models.EmailVerification{}).
		Where("user_id = ? AND used = ?", user.ID, false).
		Update("used", true).Error; err != nil {
		log.Printf("作废旧验证令牌失败: user=%d err=%v", user.ID, err)
	}

	h.sendVerification(&user)
	SuccessWithMessage(c, msgVerificationResent, nil)
}

// ForgotPassword 请求密码重置
// @Summary 请求密码重置
// @Description 发送 1 小时内有效的一次性重置链接。为防止枚举，无论邮箱是否存在都返回相同提示。
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body EmailRequest true "邮箱地址"
// @Success 200 {object} Response "请求成功"
// @Failure 400 {object} Response "参数错误"
// @Router /api/auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ValidationError(c, err)
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", normalizeEmail(req.Email)).First(&user).Error; err != nil {
		SuccessWithMessage(c, msgResetRequested, nil)
		return
	}

	// 同一用户只保留最新的一个令牌
	if err := database.DB.Model(&models.PasswordReset{}).
		Where("user_id = ? AND used = ?", user.ID, false).
		Update("used", true).Error; err != nil {
		log.Printf("作废旧重置令牌失败: user=%d err=%v", user.ID, err)
	}

	reset, token, err := models.NewPasswordReset(&user, h.cfg.Auth.ResetTTL)
	if err != nil {
		log.Printf("生成重置令牌失败: user=%d err=%v", user.ID, err)
		SuccessWithMessage(c, msgResetRequested, nil)
		return
	}
	if err := database.DB.Create(reset).Error; err != nil {
		log.Printf("保存重置令牌失败: user=%d err=%v", user.ID, err)
		SuccessWithMessage(c, msgResetRequested, nil)
		return
	}

	link := h.cfg.Auth.FrontendURL + "/reset-password?token=" + token
	if err := h.mailer.SendPasswordResetEmail(user.Email, user.Name, link); err != nil {
		// 邮件发送失败，删除令牌
		log.Printf("发送重置邮件失败: user=%d err=%v", user.ID, err)
		database.DB.Delete(reset)
	}

	SuccessWithMessage(c, msgResetRequested, nil)
}

// ResetPassword 重置密码
// @Summary 重置密码
// @Description 使用重置令牌设置新密码，令牌使用后立即失效
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "令牌与新密码"
// @Success 200 {object} Response "重置成功"
// @Failure 400 {object} Response "令牌无效或已过期"
// @Router /api/auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ValidationError(c, err)
		return
	}

	var reset models.PasswordReset
	if err := database.DB.Where("token_hash = ?", models.HashResetToken(req.Token)).First(&reset).Error; err != nil {
		BadRequest(c, msgInvalidResetToken)
		return
	}
	if !reset.IsValid() {
		BadRequest(c, msgInvalidResetToken)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		InternalError(c, "密码加密失败")
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", reset.UserID).
			Update("password", string(hashedPassword)).Error; err != nil {
			return err
		}
		return tx.Model(&models.PasswordReset{}).
			Where("user_id = ? AND used = ?", reset.UserID, false).
			Update("used", true).Error
	})
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "重置密码失败"))
		return
	}

	SuccessWithMessage(c, "密码重置成功，请使用新密码登录", nil)
}

// Verify 校验 token 并返回当前用户
// @Summary 获取当前用户
// @Description 校验 JWT 并返回其对应的用户
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=object} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/auth/verify [get]
func (h *AuthHandler) Verify(c *gin.Context) {
	var user models.User
	if err := database.DB.First(&user, middleware.GetCurrentUserID(c)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			Unauthorized(c, "未登录或登录已过期")
			return
		}
		InternalError(c, SafeErrorMessage(err, "查询用户失败"))
		return
	}
	Success(c, gin.H{"user": user})
}

// Logout 退出登录
// @Summary 退出登录
// @Description JWT 无状态，客户端丢弃 token 即可
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response "已退出登录"
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	SuccessWithMessage(c, "已退出登录", nil)
}
