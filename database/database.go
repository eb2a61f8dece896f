package database

import (
	"fmt"
	"log"

	"fintrack/config"
	"fintrack/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// DSN 构建 MySQL DSN 连接字符串
func DSN(cfg *config.Config) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
	)
}

// Init 初始化数据库连接
func Init(cfg *config.Config) error {
	logLevel := logger.Info
	if cfg.Server.Mode == "release" {
		logLevel = logger.Warn
	}

	var err error
	DB, err = gorm.Open(mysql.Open(DSN(cfg)), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return fmt.Errorf("连接数据库失败: %w", err)
	}

	// 获取底层 *sql.DB 连接池配置
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	// 设置连接池参数
	sqlDB.SetMaxIdleConns(10)  // 最大空闲连接数
	sqlDB.SetMaxOpenConns(100) // 最大打开连接数

	if err := Migrate(DB); err != nil {
		return err
	}

	log.Println("数据库初始化成功")
	return nil
}

// Migrate 自动迁移数据库表
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Transaction{},
		&models.BudgetCategory{},
		&models.Goal{},
		&models.GoalMilestone{},
		&models.EmailVerification{},
		&models.PasswordReset{},
	); err != nil {
		return fmt.Errorf("数据库迁移失败: %w", err)
	}

	// 兼容历史数据：没有周期的预算按月度处理
	_ = db.Model(&models.BudgetCategory{}).
		Where("period IS NULL OR period = ''").
		Update("period", models.BudgetPeriodMonthly).Error

	return nil
}

// GetDB 获取数据库连接
func GetDB() *gorm.DB {
	return DB
}
