package api

import (
	"time"

	"fintrack/database"
	"fintrack/middleware"
	"fintrack/models"

	"github.com/gin-gonic/gin"
)

// BudgetHandler 预算处理器
type BudgetHandler struct{}

// NewBudgetHandler 创建预算处理器
func NewBudgetHandler() *BudgetHandler {
	return &BudgetHandler{}
}

// CreateBudgetRequest 创建预算请求，allocated 为月度金额
type CreateBudgetRequest struct {
	Name      string   `json:"name" binding:"required,max=50" example:"Shopping"`
	Allocated *float64 `json:"allocated" binding:"required,gte=0" example:"200"`
	Color     string   `json:"color" binding:"max=20" example:"#3B82F6"`
	Icon      string   `json:"icon" binding:"max=20" example:"cart"`
	Period    string   `json:"period" binding:"omitempty,oneof=weekly monthly yearly" example:"monthly"`
	StartDate string   `json:"startDate" example:"2024-01-01"`
	EndDate   string   `json:"endDate" example:"2024-01-31"`
}

// UpdateBudgetRequest 部分更新预算，未提供的字段保持不变
type UpdateBudgetRequest struct {
	Name      *string  `json:"name" binding:"omitempty,min=1,max=50"`
	Allocated *float64 `json:"allocated" binding:"omitempty,gte=0"`
	Spent     *float64 `json:"spent" binding:"omitempty,gte=0"`
	Color     *string  `json:"color" binding:"omitempty,max=20"`
	Icon      *string  `json:"icon" binding:"omitempty,max=20"`
	Period    *string  `json:"period" binding:"omitempty,oneof=weekly monthly yearly"`
	IsActive  *bool    `json:"isActive"`
}

// List 获取启用中的预算
// @Summary 获取预算列表
// @Description 返回当前用户所有启用中的预算类别（已删除的不返回）
// @Tags 预算
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.BudgetCategory} "获取成功"
// @Router /api/budgets [get]
func (h *BudgetHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	budgets := []models.BudgetCategory{}
	if err := database.DB.Where("user_id = ? AND is_active = ?", userID, true).
		Order("id ASC").
		Find(&budgets).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	Success(c, budgets)
}

// Create 创建预算
// @Summary 创建预算
// @Description 创建预算类别，未指定时间窗口时默认从今天起 30 天
// @Tags 预算
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateBudgetRequest true "预算信息"
// @Success 201 {object} Response{data=models.BudgetCategory} "创建成功"
// @Failure 400 {object} Response "参数错误"
// @Router /api/budgets [post]
func (h *BudgetHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ValidationError(c, err)
		return
	}

	start, end := models.DefaultBudgetWindow(time.Now())
	if req.StartDate != "" {
		d, err := parseDate(req.StartDate)
		if err != nil {
			BadRequest(c, "开始日期格式错误，应为: 2006-01-02")
			return
		}
		start, end = models.DefaultBudgetWindow(d)
	}
	if req.EndDate != "" {
		d, err := parseDate(req.EndDate)
		if err != nil {
			BadRequest(c, "结束日期格式错误，应为: 2006-01-02")
			return
		}
		end = d
	}
	if end.Before(start) {
		BadRequest(c, "结束日期不能早于开始日期")
		return
	}

	budget := models.BudgetCategory{
		UserID:    userID,
		Name:      req.Name,
		Allocated: *req.Allocated,
		Color:     req.Color,
		Icon:      req.Icon,
		Period:    req.Period,
		StartDate: start,
		EndDate:   end,
		IsActive:  true,
	}
	if budget.Color == "" {
		budget.Color = models.DefaultBudgetColor
	}
	if budget.Period == "" {
		budget.Period = models.BudgetPeriodMonthly
	}

	if err := database.DB.Create(&budget).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建预算失败"))
		return
	}

	Created(c, "预算已创建", budget)
}

// Update 更新预算
// @Summary 更新预算
// @Description 部分更新预算类别
// @Tags 预算
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "预算ID"
// @Param request body UpdateBudgetRequest true "预算信息"
// @Success 200 {object} Response{data=models.BudgetCategory} "更新成功"
// @Failure 400 {object} Response "参数错误"
// @Failure 404 {object} Response "预算不存在"
// @Router /api/budgets/{id} [put]
func (h *BudgetHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ValidationError(c, err)
		return
	}

	var budget models.BudgetCategory
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&budget).Error; err != nil {
		NotFound(c, "预算不存在")
		return
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Allocated != nil {
		updates["allocated"] = *req.Allocated
	}
	if req.Spent != nil {
		updates["spent"] = *req.Spent
	}
	if req.Color != nil {
		updates["color"] = *req.Color
	}
	if req.Icon != nil {
		updates["icon"] = *req.Icon
	}
	if req.Period != nil {
		updates["period"] = *req.Period
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&budget).Updates(updates).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "更新失败"))
			return
		}
	}

	SuccessWithMessage(c, "预算已更新", budget)
}

// Delete 删除预算（软删除）
// @Summary 删除预算
// @Description 将预算标记为停用（isActive=false），数据保留
// @Tags 预算
// @Produce json
// @Security BearerAuth
// @Param id path int true "预算ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "预算不存在"
// @Router /api/budgets/{id} [delete]
func (h *BudgetHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	var budget models.BudgetCategory
	if err := database.DB.Where("id = ? AND user_id = ? AND is_active = ?", id, userID, true).First(&budget).Error; err != nil {
		NotFound(c, "预算不存在")
		return
	}

	if err := database.DB.Model(&budget).Update("is_active", false).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "删除失败"))
		return
	}

	SuccessWithMessage(c, "预算已删除", nil)
}
