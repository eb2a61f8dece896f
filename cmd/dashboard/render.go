package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"fintrack/currency"
	"fintrack/ledger"
	"fintrack/session"
)

var statusLabel = map[ledger.Status]string{
	ledger.StatusGood:    "正常",
	ledger.StatusWarning: "接近上限",
	ledger.StatusOver:    "已超支",
}

func printDashboard(w io.Writer, s *session.Store, period ledger.Period, recent int) {
	profile := s.Profile()
	code := profile.Currency
	d := s.Dashboard(recent)

	fmt.Fprintf(w, "%s <%s>\n", profile.Name, profile.Email)
	fmt.Fprintf(w, "余额: %s\n", currency.Format(d.Balance, code))
	fmt.Fprintf(w, "本月: 收入 %s  支出 %s  结余 %s  储蓄率 %.1f%%\n",
		currency.Format(d.Month.Income, code),
		currency.Format(d.Month.Spent, code),
		currency.Format(d.Month.Saved, code),
		d.Month.SavingsRate)
	fmt.Fprintf(w, "目标整体进度: %.1f%%\n\n", d.OverallProgress)

	fmt.Fprintf(w, "预算（%s）\n", period)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "类别\t分配\t已用\t剩余\t使用率\t状态")
	for _, l := range s.BudgetView(period) {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.0f%%\t%s\n",
			l.Name,
			currency.Format(l.Allocated, code),
			currency.Format(l.Spent, code),
			currency.Format(l.Remaining, code),
			l.Percentage,
			statusLabel[l.Status])
	}
	tw.Flush()

	fmt.Fprintln(w, "\n提示")
	for _, line := range s.Insights(period) {
		fmt.Fprintln(w, line)
	}

	if len(d.Recent) > 0 {
		fmt.Fprintln(w, "\n最近交易")
		tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, t := range d.Recent {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.Date.Format("2006-01-02"), t.Merchant, t.Category, currency.Format(t.Signed(), code))
		}
		tw.Flush()
	}
}

func printRebalance(w io.Writer, res session.RebalanceResult, code string) {
	for _, b := range res.Applied {
		fmt.Fprintf(w, "✓ %s -> %s\n", b.Name, currency.Format(b.Allocated, code))
	}
	for _, b := range res.Pending {
		fmt.Fprintf(w, "✗ %s 未更新（计划 %s）\n", b.Name, currency.Format(b.Allocated, code))
	}
}
