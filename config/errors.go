package config

// SafeErrorMessage release 模式下返回 fallback，避免向客户端暴露内部错误
// 未初始化配置时视为开发环境
func SafeErrorMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if GlobalConfig != nil && GlobalConfig.Server.Mode == "release" {
		return fallback
	}
	return err.Error()
}
