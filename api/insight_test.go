package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInsightRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/insights", NewInsightHandler().Get)
	return router
}

func TestInsightHandler_Get(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	day := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT .* FROM `users`").WithArgs(1).WillReturnRows(profileRows())
	mock.ExpectQuery("SELECT \\* FROM `transactions`").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(transactionColumns).
			AddRow(1, 1, "Target", 250, "Shopping", "expense", day, "", "").
			AddRow(2, 1, "Cafe", 40, "Food & Dining", "expense", day, "", "").
			AddRow(3, 1, "Salary", 3000, "Income", "income", day, "", ""))
	mock.ExpectQuery("SELECT \\* FROM `budget_categories`").
		WithArgs(1, true).
		WillReturnRows(sqlmock.NewRows(budgetColumns).
			AddRow(1, 1, "Shopping", 200, 0, "#3B82F6", "", "monthly", day, day, true).
			AddRow(2, 1, "Food & Dining", 400, 0, "#10B981", "", "monthly", day, day, true))
	mock.ExpectQuery("SELECT \\* FROM `goals`").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(goalColumns))

	w := doRequest(newTestInsightRouter(), http.MethodGet, "/insights", "")

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "monthly", data["period"])
	assert.Equal(t, "USD", data["currency"])
	assert.Equal(t, float64(600), data["totalAllocated"])
	assert.Equal(t, float64(290), data["totalSpent"])

	insights := data["insights"].([]interface{})
	assert.Contains(t, insights, "• 有 1 个类别已超出预算")
	assert.Contains(t, insights, "• 支出最高：Shopping（$250.00）")

	budgets := data["budgets"].([]interface{})
	require.Len(t, budgets, 2)
	assert.Equal(t, "over", budgets[0].(map[string]interface{})["status"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsightHandler_WeeklyWithExplicitCurrency(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	day := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT \\* FROM `transactions`").WillReturnRows(sqlmock.NewRows(transactionColumns))
	mock.ExpectQuery("SELECT \\* FROM `budget_categories`").
		WillReturnRows(sqlmock.NewRows(budgetColumns).
			AddRow(1, 1, "Shopping", 200, 0, "#3B82F6", "", "monthly", day, day, true))
	mock.ExpectQuery("SELECT \\* FROM `goals`").WillReturnRows(sqlmock.NewRows(goalColumns))

	w := doRequest(newTestInsightRouter(), http.MethodGet, "/insights?period=weekly&currency=EUR", "")

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "weekly", data["period"])
	assert.Equal(t, "EUR", data["currency"])
	assert.Equal(t, float64(50), data["totalAllocated"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsightHandler_RejectsUnknownPeriod(t *testing.T) {
	w := doRequest(newTestInsightRouter(), http.MethodGet, "/insights?period=daily", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
