package core

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig 从指定的 YAML 文件加载配置并反序列化到 out。
// 环境变量可以覆盖文件中的值，层级用下划线分隔，
// 例如 CAMERA_SERVICE_MYSQLCONFIG_WRITE_DSN 覆盖 mysqlConfig.write.dsn。
func LoadConfig(configFile string, out interface{}) error {
	v := viper.New()
	v.SetConfigFile(configFile)

	v.SetEnvPrefix("CAMERA_SERVICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("读取配置文件 %s 失败: %w", configFile, err)
	}
	if err := v.Unmarshal(out); err != nil {
		return fmt.Errorf("解析配置文件 %s 失败: %w", configFile, err)
	}
	return nil
}
