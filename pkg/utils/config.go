package utils

import (
	"encoding/json"
	"os"

	"github.com/joho/godotenv"
)

// LoadJSON 从文件加载 JSON 配置到指定结构体
func LoadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// LoadEnvFile 加载 .env 文件到环境变量 (不覆盖已存在的)
func LoadEnvFile(paths ...string) {
	_ = godotenv.Load(paths...)
}
