package api

import (
	"fintrack/database"
	"fintrack/ledger"
	"fintrack/middleware"
	"fintrack/models"

	"github.com/gin-gonic/gin"
)

// InsightHandler 预算分析处理器
type InsightHandler struct{}

// NewInsightHandler 创建预算分析处理器
func NewInsightHandler() *InsightHandler {
	return &InsightHandler{}
}

// InsightResponse 预算分析结果
type InsightResponse struct {
	Period          ledger.Period       `json:"period"`
	Currency        string              `json:"currency"`
	Insights        []string            `json:"insights"`
	Budgets         []ledger.BudgetLine `json:"budgets"`
	TotalAllocated  float64             `json:"totalAllocated"`
	TotalSpent      float64             `json:"totalSpent"`
	OverallProgress float64             `json:"overallProgress"`
}

// Get 生成预算分析
// @Summary 预算分析
// @Description 基于全部历史交易计算预算使用情况与提示；分配额按 period 换算，已用金额始终为历史累计
// @Tags 分析
// @Produce json
// @Security BearerAuth
// @Param period query string false "weekly/monthly/yearly" default(monthly)
// @Param currency query string false "展示货币，默认使用用户偏好"
// @Success 200 {object} Response{data=InsightResponse} "获取成功"
// @Failure 400 {object} Response "参数错误"
// @Router /api/insights [get]
func (h *InsightHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	period, err := ledger.ParsePeriod(c.Query("period"))
	if err != nil {
		BadRequest(c, "无效的周期，应为 weekly/monthly/yearly")
		return
	}

	currencyCode := c.Query("currency")
	if currencyCode == "" {
		var user models.User
		if err := database.DB.First(&user, userID).Error; err != nil {
			NotFound(c, "用户不存在")
			return
		}
		currencyCode = user.Preferences.Currency
	}

	var transactions []models.Transaction
	if err := database.DB.Where("user_id = ?", userID).Find(&transactions).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	var budgets []models.BudgetCategory
	if err := database.DB.Where("user_id = ? AND is_active = ?", userID, true).Order("id ASC").Find(&budgets).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	var goals []models.Goal
	if err := database.DB.Where("user_id = ?", userID).Find(&goals).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	engine := ledger.NewEngine(toLedgerTransactions(transactions), toLedgerBudgets(budgets), toLedgerGoals(goals))
	lines := engine.BudgetView(period)
	var totalSpent float64
	for _, l := range lines {
		totalSpent += l.Spent
	}

	Success(c, InsightResponse{
		Period:          period,
		Currency:        currencyCode,
		Insights:        engine.Insights(period, currencyCode),
		Budgets:         lines,
		TotalAllocated:  engine.TotalAllocated(period),
		TotalSpent:      totalSpent,
		OverallProgress: engine.OverallProgress(),
	})
}
