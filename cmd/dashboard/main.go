package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"fintrack/client"
	"fintrack/config"
	"fintrack/ledger"
	"fintrack/session"
)

func main() {
	configFile := flag.String("config", "", "外部配置文件路径（可选）")
	baseURL := flag.String("api", "", "API 地址，默认读取 client.api_base_url")
	email := flag.String("email", "", "登录邮箱")
	password := flag.String("password", "", "登录密码")
	periodFlag := flag.String("period", "monthly", "预算周期 weekly/monthly/yearly")
	recent := flag.Int("recent", 5, "显示最近交易条数")
	income := flag.Float64("income", 0, "月收入，仅用于计算与重新分配预算")
	rebalance := flag.Bool("rebalance", false, "按月收入重新分配预算")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("请提供 -email 和 -password")
	}
	period, err := ledger.ParsePeriod(*periodFlag)
	if err != nil {
		log.Fatalf("无效的周期: %v", err)
	}

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	if *baseURL == "" {
		*baseURL = cfg.Client.APIBaseURL
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	api := client.New(*baseURL, client.WithTimeout(time.Duration(cfg.Client.TimeoutSeconds)*time.Second))
	auth, err := api.Login(ctx, *email, *password)
	if err != nil {
		if client.IsEmailNotVerified(err) {
			log.Fatalf("邮箱 %s 尚未验证，请先查收验证邮件", *email)
		}
		log.Fatalf("登录失败: %v", err)
	}

	currencyCode := auth.User.Preferences.Currency
	if currencyCode == "" {
		currencyCode = cfg.Client.Currency
	}

	store := session.NewStore(api, nil)
	profile := ledger.UserProfile{
		Name:          auth.User.Name,
		Email:         auth.User.Email,
		Currency:      currencyCode,
		MonthlyIncome: *income,
	}
	if err := store.Begin(ctx, auth.Token, profile); err != nil {
		// 部分数据加载失败时仍然展示已获取的部分
		log.Printf("加载会话数据不完整: %v", err)
	}
	defer store.End()

	if *rebalance {
		if *income <= 0 {
			log.Fatal("重新分配预算需要提供 -income")
		}
		res, err := store.Rebalance(ctx, *income)
		printRebalance(os.Stdout, res, currencyCode)
		if err != nil {
			log.Printf("重新分配未完成: %v", err)
		}
	}

	printDashboard(os.Stdout, store, period, *recent)
}
