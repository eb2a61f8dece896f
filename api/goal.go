package api

import (
	"time"

	"fintrack/database"
	"fintrack/ledger"
	"fintrack/middleware"
	"fintrack/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GoalHandler 储蓄目标处理器
type GoalHandler struct{}

// NewGoalHandler 创建储蓄目标处理器
func NewGoalHandler() *GoalHandler {
	return &GoalHandler{}
}

// CreateGoalRequest 创建目标请求
type CreateGoalRequest struct {
	Title         string  `json:"title" binding:"required,max=100" example:"Emergency Fund"`
	Description   string  `json:"description" binding:"max=500"`
	TargetAmount  float64 `json:"targetAmount" binding:"required,gt=0" example:"10000"`
	CurrentAmount float64 `json:"currentAmount" binding:"gte=0" example:"0"`
	TargetDate    string  `json:"targetDate" binding:"required" example:"2025-12-31"`
	Category      string  `json:"category" binding:"required,max=50" example:"Savings"`
	Priority      string  `json:"priority" binding:"omitempty,oneof=low medium high" example:"medium"`
}

// UpdateGoalRequest 部分更新目标，currentAmount 增加时记录一条里程碑
type UpdateGoalRequest struct {
	Title         *string  `json:"title" binding:"omitempty,min=1,max=100"`
	Description   *string  `json:"description" binding:"omitempty,max=500"`
	TargetAmount  *float64 `json:"targetAmount" binding:"omitempty,gt=0"`
	CurrentAmount *float64 `json:"currentAmount" binding:"omitempty,gte=0"`
	TargetDate    *string  `json:"targetDate"`
	Category      *string  `json:"category" binding:"omitempty,min=1,max=50"`
	Priority      *string  `json:"priority" binding:"omitempty,oneof=low medium high"`
	Status        *string  `json:"status" binding:"omitempty,oneof=active completed paused cancelled"`
	Note          string   `json:"note" binding:"max=200"`
}

// GoalResponse 目标及其派生进度
type GoalResponse struct {
	models.Goal
	ledger.GoalProgress
}

func newGoalResponse(g models.Goal) GoalResponse {
	return GoalResponse{Goal: g, GoalProgress: ledger.Progress(toLedgerGoal(g), time.Now())}
}

// List 获取目标列表
// @Summary 获取目标列表
// @Description 按截止日期升序返回当前用户的目标，可按状态筛选
// @Tags 目标
// @Produce json
// @Security BearerAuth
// @Param status query string false "状态 active/completed/paused/cancelled"
// @Success 200 {object} Response{data=[]GoalResponse} "获取成功"
// @Router /api/goals [get]
func (h *GoalHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	query := database.DB.Where("user_id = ?", userID)
	if status := c.Query("status"); status != "" {
		switch status {
		case models.GoalStatusActive, models.GoalStatusCompleted, models.GoalStatusPaused, models.GoalStatusCancelled:
			query = query.Where("status = ?", status)
		default:
			BadRequest(c, "无效的状态")
			return
		}
	}

	var goals []models.Goal
	if err := query.Preload("Milestones").Order("target_date ASC").Find(&goals).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	resp := make([]GoalResponse, 0, len(goals))
	for _, g := range goals {
		resp = append(resp, newGoalResponse(g))
	}
	Success(c, resp)
}

// Get 获取单个目标
// @Summary 获取单个目标
// @Tags 目标
// @Produce json
// @Security BearerAuth
// @Param id path int true "目标ID"
// @Success 200 {object} Response{data=GoalResponse} "获取成功"
// @Failure 404 {object} Response "目标不存在"
// @Router /api/goals/{id} [get]
func (h *GoalHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	var goal models.Goal
	if err := database.DB.Preload("Milestones").Where("id = ? AND user_id = ?", id, userID).First(&goal).Error; err != nil {
		NotFound(c, "目标不存在")
		return
	}

	Success(c, newGoalResponse(goal))
}

// Create 创建目标
// @Summary 创建目标
// @Tags 目标
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateGoalRequest true "目标信息"
// @Success 201 {object} Response{data=GoalResponse} "创建成功"
// @Failure 400 {object} Response "参数错误"
// @Router /api/goals [post]
func (h *GoalHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ValidationError(c, err)
		return
	}

	targetDate, err := parseDate(req.TargetDate)
	if err != nil {
		BadRequest(c, "目标日期格式错误，应为: 2006-01-02")
		return
	}

	goal := models.Goal{
		UserID:        userID,
		Title:         req.Title,
		Description:   req.Description,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		TargetDate:    targetDate,
		Category:      req.Category,
		Priority:      req.Priority,
		Status:        models.GoalStatusActive,
	}
	if goal.Priority == "" {
		goal.Priority = models.GoalPriorityMedium
	}

	if err := database.DB.Create(&goal).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建目标失败"))
		return
	}

	Created(c, "目标已创建", newGoalResponse(goal))
}

// Update 更新目标
// @Summary 更新目标
// @Description 部分更新目标；currentAmount 增加时自动记录一条里程碑
// @Tags 目标
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "目标ID"
// @Param request body UpdateGoalRequest true "目标信息"
// @Success 200 {object} Response{data=GoalResponse} "更新成功"
// @Failure 400 {object} Response "参数错误"
// @Failure 404 {object} Response "目标不存在"
// @Router /api/goals/{id} [put]
func (h *GoalHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ValidationError(c, err)
		return
	}

	var goal models.Goal
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&goal).Error; err != nil {
		NotFound(c, "目标不存在")
		return
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.TargetAmount != nil {
		updates["target_amount"] = *req.TargetAmount
	}
	if req.TargetDate != nil {
		d, err := parseDate(*req.TargetDate)
		if err != nil {
			BadRequest(c, "目标日期格式错误，应为: 2006-01-02")
			return
		}
		updates["target_date"] = d
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Priority != nil {
		updates["priority"] = *req.Priority
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	var milestone *models.GoalMilestone
	if req.CurrentAmount != nil {
		if delta := *req.CurrentAmount - goal.CurrentAmount; delta > 0 {
			milestone = &models.GoalMilestone{
				GoalID: goal.ID,
				Amount: delta,
				Date:   time.Now(),
				Note:   req.Note,
			}
		}
		updates["current_amount"] = *req.CurrentAmount
	}

	if len(updates) > 0 {
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&goal).Updates(updates).Error; err != nil {
				return err
			}
			if milestone != nil {
				return tx.Create(milestone).Error
			}
			return nil
		})
		if err != nil {
			InternalError(c, SafeErrorMessage(err, "更新失败"))
			return
		}
	}

	SuccessWithMessage(c, "目标已更新", newGoalResponse(goal))
}

// Delete 删除目标（物理删除，里程碑级联删除）
// @Summary 删除目标
// @Tags 目标
// @Produce json
// @Security BearerAuth
// @Param id path int true "目标ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "目标不存在"
// @Router /api/goals/{id} [delete]
func (h *GoalHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	result := database.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Goal{})
	if result.Error != nil {
		InternalError(c, SafeErrorMessage(result.Error, "删除失败"))
		return
	}
	if result.RowsAffected == 0 {
		NotFound(c, "目标不存在")
		return
	}

	SuccessWithMessage(c, "目标已删除", nil)
}
