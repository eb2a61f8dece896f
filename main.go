package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"fintrack/config"
	"fintrack/database"
	"fintrack/docs"
	"fintrack/middleware"
	"fintrack/router"
)

// @title 个人记账 API
// @version 1.0
// @description 个人财务管理 API，支持交易记录、预算、储蓄目标、预算分析和数据导出
// @host localhost:5000
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// version 发布时通过 -ldflags "-X main.version=v1.2.3" 覆盖
var version = "v1.0.0"

// options 命令行参数
type options struct {
	configFile  string
	port        string
	showVersion bool
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("fintrack", flag.ContinueOnError)
	fs.StringVar(&opts.configFile, "config", "", "外部配置文件路径（可选）")
	fs.StringVar(&opts.configFile, "c", "", "外部配置文件路径（简写）")
	fs.StringVar(&opts.port, "port", "", "监听端口，如: 5000 或 :5000")
	fs.StringVar(&opts.port, "p", "", "监听端口（简写）")
	fs.BoolVar(&opts.showVersion, "version", false, "显示版本信息")
	fs.BoolVar(&opts.showVersion, "v", false, "显示版本信息（简写）")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return opts, nil
}

// normalizePort 5000 与 :5000 均规范为 :5000
func normalizePort(port string) string {
	port = strings.TrimSpace(port)
	if port == "" || strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

// applySwaggerInfo 文档中的版本号与监听地址跟随实际运行的服务
func applySwaggerInfo(port string) {
	docs.SwaggerInfo.Version = strings.TrimPrefix(version, "v")
	docs.SwaggerInfo.Host = "localhost" + port
}

func printBanner(port string) {
	log.Printf("==========================================")
	log.Printf("  fintrack %s 已启动", version)
	log.Printf("==========================================")
	log.Printf("  Swagger:  http://localhost%s/swagger/index.html", port)
	log.Printf("  API接口:  http://localhost%s/api/", port)
	log.Printf("==========================================")
}

func run(args []string) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}
	if opts.showVersion {
		fmt.Printf("fintrack %s\n", version)
		return nil
	}

	cfg, err := config.LoadConfig(opts.configFile)
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}
	if port := normalizePort(opts.port); port != "" {
		cfg.Server.Port = port
		log.Printf("命令行指定端口: %s", port)
	}
	config.PrintConfig()

	if err := database.Init(cfg); err != nil {
		return fmt.Errorf("数据库初始化失败: %w", err)
	}
	middleware.InitJWT(cfg)
	applySwaggerInfo(cfg.Server.Port)

	r := router.SetupRouter(cfg)
	printBanner(cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("服务器启动失败: %w", err)
	}
	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatal(err)
	}
}
