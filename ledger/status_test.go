package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBudgetStatus(t *testing.T) {
	tests := []struct {
		name      string
		spent     float64
		allocated float64
		want      Status
	}{
		{"80 percent warns", 80, 100, StatusWarning},
		{"exactly full is over", 100, 100, StatusOver},
		{"half is good", 50, 100, StatusGood},
		{"nothing allocated nothing spent", 0, 0, StatusGood},
		{"spent without allocation", 5, 0, StatusOver},
		{"negative allocation", 5, -10, StatusOver},
		{"just under warning", 79.99, 100, StatusGood},
		{"overspent", 250, 200, StatusOver},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BudgetStatus(tt.spent, tt.allocated))
		})
	}
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 25.0, Percentage(50, 200))
	assert.Equal(t, 0.0, Percentage(50, 0))
}
