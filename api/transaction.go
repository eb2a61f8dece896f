package api

import (
	"time"

	"fintrack/database"
	"fintrack/middleware"
	"fintrack/models"

	"github.com/gin-gonic/gin"
)

// TransactionHandler 交易记录处理器
type TransactionHandler struct{}

// NewTransactionHandler 创建交易记录处理器
func NewTransactionHandler() *TransactionHandler {
	return &TransactionHandler{}
}

// TransactionRequest 创建/替换交易请求，金额始终为正数
type TransactionRequest struct {
	Merchant    string  `json:"merchant" binding:"required,max=100" example:"Target"`
	Amount      float64 `json:"amount" binding:"required,gt=0" example:"50"`
	Category    string  `json:"category" binding:"required,max=50" example:"Shopping"`
	Type        string  `json:"type" binding:"required,oneof=expense income" example:"expense"`
	Date        string  `json:"date" example:"2024-03-02"`
	Description string  `json:"description" binding:"max=500" example:"Groceries"`
}

// TransactionListRequest 交易列表查询参数
type TransactionListRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1" example:"1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100" example:"10"`
	Category string `form:"category" example:"Shopping"`
	Type     string `form:"type" binding:"omitempty,oneof=expense income" example:"expense"`
}

// TransactionListResponse 交易列表响应
type TransactionListResponse struct {
	Transactions []models.Transaction `json:"transactions"`
	Pagination   Pagination           `json:"pagination"`
}

// TypeTotal 某类型的合计
type TypeTotal struct {
	Total float64 `json:"total"`
	Count int64   `json:"count"`
}

// CategoryTotal 分类合计
type CategoryTotal struct {
	Category string  `json:"category"`
	Type     string  `json:"type"`
	Total    float64 `json:"total"`
	Count    int64   `json:"count"`
}

// SummaryResponse 交易统计响应
type SummaryResponse struct {
	StartDate  string          `json:"startDate"`
	EndDate    string          `json:"endDate"`
	Income     TypeTotal       `json:"income"`
	Expense    TypeTotal       `json:"expense"`
	Net        float64         `json:"net"`
	ByCategory []CategoryTotal `json:"byCategory"`
}

// timeOfDay 服务端生成的展示时间
var timeOfDay = func() string {
	return time.Now().Format("3:04:05 PM")
}

// List 获取交易列表
// @Summary 获取交易列表
// @Description 分页获取当前用户的交易，按日期倒序，支持类别、类型、日期范围筛选
// @Tags 交易
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量 (1-100)" default(10)
// @Param category query string false "类别"
// @Param type query string false "类型 expense/income"
// @Param startDate query string false "开始日期 (2024-01-01)"
// @Param endDate query string false "结束日期 (2024-12-31)"
// @Success 200 {object} Response{data=TransactionListResponse} "获取成功"
// @Failure 400 {object} Response "参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req TransactionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		ValidationError(c, err)
		return
	}
	if req.Page == 0 {
		req.Page = 1
	}
	if req.Limit == 0 {
		req.Limit = 10
	}

	start, end, ok := parseDateRange(c)
	if !ok {
		return
	}

	query := database.DB.Model(&models.Transaction{}).Where("user_id = ?", userID)
	if req.Category != "" {
		query = query.Where("category = ?", req.Category)
	}
	if req.Type != "" {
		query = query.Where("type = ?", req.Type)
	}
	if !start.IsZero() {
		query = query.Where("date >= ?", start)
	}
	if !end.IsZero() {
		query = query.Where("date <= ?", end)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	transactions := []models.Transaction{}
	offset := (req.Page - 1) * req.Limit
	if err := query.Order("date DESC, id DESC").Offset(offset).Limit(req.Limit).Find(&transactions).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	pages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	Success(c, TransactionListResponse{
		Transactions: transactions,
		Pagination: Pagination{
			Page:  req.Page,
			Limit: req.Limit,
			Total: total,
			Pages: pages,
		},
	})
}

// Get 获取单条交易
// @Summary 获取单条交易
// @Tags 交易
// @Produce json
// @Security BearerAuth
// @Param id path int true "交易ID"
// @Success 200 {object} Response{data=models.Transaction} "获取成功"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/transactions/{id} [get]
func (h *TransactionHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	var transaction models.Transaction
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&transaction).Error; err != nil {
		NotFound(c, "交易不存在")
		return
	}

	Success(c, transaction)
}

// Create 创建交易
// @Summary 创建交易
// @Description 创建交易，日期缺省为今天，时间由服务端生成
// @Tags 交易
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TransactionRequest true "交易信息"
// @Success 201 {object} Response{data=models.Transaction} "创建成功"
// @Failure 400 {object} Response "参数错误"
// @Router /api/transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ValidationError(c, err)
		return
	}

	date := time.Now()
	if req.Date != "" {
		d, err := parseDate(req.Date)
		if err != nil {
			BadRequest(c, "日期格式错误，应为: 2006-01-02")
			return
		}
		date = d
	}

	transaction := models.Transaction{
		UserID:      userID,
		Merchant:    req.Merchant,
		Amount:      req.Amount,
		Category:    req.Category,
		Type:        req.Type,
		Date:        date,
		Time:        timeOfDay(),
		Description: req.Description,
	}
	if err := database.DB.Create(&transaction).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建交易失败"))
		return
	}

	Created(c, "交易已创建", transaction)
}

// Update 替换交易
// @Summary 更新交易
// @Description 以请求内容整体替换交易（时间字段保持不变）
// @Tags 交易
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "交易ID"
// @Param request body TransactionRequest true "交易信息"
// @Success 200 {object} Response{data=models.Transaction} "更新成功"
// @Failure 400 {object} Response "参数错误"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/transactions/{id} [put]
func (h *TransactionHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ValidationError(c, err)
		return
	}

	var transaction models.Transaction
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&transaction).Error; err != nil {
		NotFound(c, "交易不存在")
		return
	}

	if req.Date != "" {
		d, err := parseDate(req.Date)
		if err != nil {
			BadRequest(c, "日期格式错误，应为: 2006-01-02")
			return
		}
		transaction.Date = d
	}
	transaction.Merchant = req.Merchant
	transaction.Amount = req.Amount
	transaction.Category = req.Category
	transaction.Type = req.Type
	transaction.Description = req.Description

	if err := database.DB.Save(&transaction).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新失败"))
		return
	}

	SuccessWithMessage(c, "交易已更新", transaction)
}

// Delete 删除交易（物理删除）
// @Summary 删除交易
// @Tags 交易
// @Produce json
// @Security BearerAuth
// @Param id path int true "交易ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	result := database.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Transaction{})
	if result.Error != nil {
		InternalError(c, SafeErrorMessage(result.Error, "删除失败"))
		return
	}
	if result.RowsAffected == 0 {
		NotFound(c, "交易不存在")
		return
	}

	SuccessWithMessage(c, "交易已删除", nil)
}

// StatsSummary 交易统计
// @Summary 交易统计
// @Description 按类型和类别汇总时间窗口内的交易，默认统计本月 1 日至今
// @Tags 交易
// @Produce json
// @Security BearerAuth
// @Param startDate query string false "开始日期 (2024-01-01)"
// @Param endDate query string false "结束日期 (2024-01-31)"
// @Success 200 {object} Response{data=SummaryResponse} "获取成功"
// @Failure 400 {object} Response "参数错误"
// @Router /api/transactions/stats/summary [get]
func (h *TransactionHandler) StatsSummary(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	start, end, ok := parseDateRange(c)
	if !ok {
		return
	}
	now := time.Now()
	if start.IsZero() {
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}
	if end.IsZero() {
		end = now
	}

	var byType []struct {
		Type  string
		Total float64
		Count int64
	}
	if err := database.DB.Model(&models.Transaction{}).
		Select("type, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Group("type").
		Scan(&byType).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "统计失败"))
		return
	}

	byCategory := []CategoryTotal{}
	if err := database.DB.Model(&models.Transaction{}).
		Select("category, type, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Group("category, type").
		Order("total DESC").
		Scan(&byCategory).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "统计失败"))
		return
	}

	resp := SummaryResponse{
		StartDate:  start.Format(dateLayout),
		EndDate:    end.Format(dateLayout),
		ByCategory: byCategory,
	}
	for _, row := range byType {
		switch row.Type {
		case models.TransactionTypeIncome:
			resp.Income = TypeTotal{Total: row.Total, Count: row.Count}
		case models.TransactionTypeExpense:
			resp.Expense = TypeTotal{Total: row.Total, Count: row.Count}
		}
	}
	resp.Net = resp.Income.Total - resp.Expense.Total

	Success(c, resp)
}
