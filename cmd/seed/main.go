package main

import (
	"flag"
	"log"
	"time"

	"fintrack/config"
	"fintrack/database"
	"fintrack/ledger"
	"fintrack/seed"
)

func main() {
	opts := seed.DefaultOptions()
	configFile := flag.String("config", "", "外部配置文件路径（可选）")
	seedValue := flag.Int64("seed", time.Now().UnixNano(), "随机种子")
	flag.StringVar(&opts.Email, "email", opts.Email, "演示用户邮箱")
	flag.StringVar(&opts.Password, "password", opts.Password, "演示用户密码")
	flag.IntVar(&opts.Transactions, "transactions", opts.Transactions, "支出笔数")
	flag.IntVar(&opts.Goals, "goals", opts.Goals, "目标数量")
	flag.Float64Var(&opts.MonthlyIncome, "income", opts.MonthlyIncome, "月收入")
	flag.IntVar(&opts.Days, "days", opts.Days, "覆盖的天数")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	if err := database.Init(cfg); err != nil {
		log.Fatalf("数据库初始化失败: %v", err)
	}

	allocations := make(map[string]float64, len(seed.ExpenseCategories))
	for _, name := range seed.ExpenseCategories {
		allocations[name] = ledger.RecommendedAllocation(name, opts.MonthlyIncome)
	}

	user, err := seed.Run(database.DB, seed.NewGenerator(*seedValue, time.Now()), opts, allocations)
	if err != nil {
		log.Fatalf("生成演示数据失败: %v", err)
	}
	log.Printf("已创建演示用户 %s (id=%d)，密码: %s", user.Email, user.ID, opts.Password)
}
