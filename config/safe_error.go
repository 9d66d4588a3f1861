package config

// SafeErrorMessage release 模式下不向客户端暴露内部错误详情，返回 fallback；
// 其它模式（或未加载配置）返回 err.Error() 便于调试
func SafeErrorMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if GlobalConfig != nil && GlobalConfig.Server.Mode == "release" {
		return fallback
	}
	return err.Error()
}
