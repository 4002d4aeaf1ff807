// file: config/config.go
package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config 服务运行所需的全部外部配置
type Config struct {
	ListenAddr    string
	MySQLDSN      string
	RedisAddr     string
	RedisPassword string
	JWTSecret     string
}

// Load 读取 .env（如果存在）和环境变量，缺省值用于本地开发
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env file")
	}

	return &Config{
		ListenAddr:    getEnv("LISTEN_ADDR", ":8080"),
		MySQLDSN:      getEnv("MYSQL_DSN", "root:123456@tcp(localhost:3306)/cfocup?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		JWTSecret:     getEnv("JWT_SECRET", "a-very-secure-secret-that-should-be-in-env"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
