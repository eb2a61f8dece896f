package api

import (
	"fintrack/database"
	"fintrack/middleware"
	"fintrack/models"

	"github.com/gin-gonic/gin"
)

// UserHandler 用户资料处理器
type UserHandler struct{}

// NewUserHandler 创建用户资料处理器
func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// UpdateProfileRequest 更新资料请求
type UpdateProfileRequest struct {
	Name   *string `json:"name" binding:"omitempty,min=1,max=50" example:"Ann"`
	Avatar *string `json:"avatar" binding:"omitempty,max=255"`
}

// UpdatePreferencesRequest 更新偏好请求，只修改提供的字段
type UpdatePreferencesRequest struct {
	Currency      *string `json:"currency" binding:"omitempty,oneof=USD EUR GBP JPY CAD AUD CHF CNY INR" example:"USD"`
	Notifications *bool   `json:"notifications"`
	BiometricAuth *bool   `json:"biometricAuth"`
	DarkMode      *bool   `json:"darkMode"`
	Language      *string `json:"language" binding:"omitempty,oneof=en es fr de it pt ru ja ko zh" example:"en"`
}

func (h *UserHandler) currentUser(c *gin.Context) (*models.User, bool) {
	var user models.User
	if err := database.DB.First(&user, middleware.GetCurrentUserID(c)).Error; err != nil {
		NotFound(c, "用户不存在")
		return nil, false
	}
	return &user, true
}

// GetProfile 获取个人资料
// @Summary 获取个人资料
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=models.User} "获取成功"
// @Failure 404 {object} Response "用户不存在"
// @Router /api/users/profile [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	Success(c, user)
}

// UpdateProfile 更新个人资料
// @Summary 更新个人资料
// @Tags 用户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "资料"
// @Success 200 {object} Response{data=models.User} "更新成功"
// @Failure 400 {object} Response "参数错误"
// @Router /api/users/profile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ValidationError(c, err)
		return
	}

	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Avatar != nil {
		updates["avatar"] = *req.Avatar
	}
	if len(updates) > 0 {
		if err := database.DB.Model(user).Updates(updates).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "更新失败"))
			return
		}
	}

	SuccessWithMessage(c, "资料已更新", user)
}

// UpdatePreferences 更新偏好设置
// @Summary 更新偏好设置
// @Description 部分更新货币、通知、生物识别、深色模式、语言
// @Tags 用户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdatePreferencesRequest true "偏好"
// @Success 200 {object} Response{data=models.Preferences} "更新成功"
// @Failure 400 {object} Response "参数错误"
// @Router /api/users/preferences [put]
func (h *UserHandler) UpdatePreferences(c *gin.Context) {
	var req UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ValidationError(c, err)
		return
	}

	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	updates := make(map[string]interface{})
	if req.Currency != nil {
		updates["pref_currency"] = *req.Currency
		user.Preferences.Currency = *req.Currency
	}
	if req.Notifications != nil {
		updates["pref_notifications"] = *req.Notifications
		user.Preferences.Notifications = *req.Notifications
	}
	if req.BiometricAuth != nil {
		updates["pref_biometric_auth"] = *req.BiometricAuth
		user.Preferences.BiometricAuth = *req.BiometricAuth
	}
	if req.DarkMode != nil {
		updates["pref_dark_mode"] = *req.DarkMode
		user.Preferences.DarkMode = *req.DarkMode
	}
	if req.Language != nil {
		updates["pref_language"] = *req.Language
		user.Preferences.Language = *req.Language
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&models.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "更新失败"))
			return
		}
	}

	SuccessWithMessage(c, "偏好设置已更新", user.Preferences)
}
