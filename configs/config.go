package configs

import (
	"fmt"
	"os"
)

type Config struct {
	AppPort        string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPass         string
	DBName         string
	RedisHost      string
	RedisPort      string
	KafkaBrokerURL string
	KafkaJobTopic  string
	AutoMigrate    bool
}

func LoadConfig() *Config {
	return &Config{
		AppPort:        getEnv("POST_APP_PORT", ":8082"),
		DBHost:         getEnv("POST_DB_HOST", "localhost"),
		DBPort:         getEnv("POST_DB_PORT", "5432"),
		DBUser:         getEnv("POST_DB_USER", "postgres"),
		DBPass:         getEnv("POST_DB_PASS", "postgres"),
		DBName:         getEnv("POST_DB_NAME", "post_db"),
		RedisHost:      getEnv("REDIS_HOST", "localhost"),
		RedisPort:      getEnv("REDIS_PORT", "6379"),
		KafkaBrokerURL: getEnv("KAFKA_BOOTSTRAP_SERVERS", "localhost:9092"),
		KafkaJobTopic:  getEnv("KAFKA_JOB_TOPIC", "post.jobs"),
		AutoMigrate:    getEnv("AUTO_MIGRATE", "true") == "true",
	}
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPass, c.DBName,
	)
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
