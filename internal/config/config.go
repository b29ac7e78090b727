package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config 全部来自环境变量，不再把 DSN 和密钥写死在代码里
type Config struct {
	Env        string `env:"VH_ENV" envDefault:"development"`
	ServerHost string `env:"VH_SERVER_HOST" envDefault:"0.0.0.0"`
	ServerPort int    `env:"VH_SERVER_PORT" envDefault:"8080"`
	LogLevel   string `env:"VH_LOG_LEVEL" envDefault:"info"`

	MySQLDSN string `env:"VH_MYSQL_DSN,required"`

	RedisAddr     string `env:"VH_REDIS_ADDR" envDefault:"127.0.0.1:6379"`
	RedisPassword string `env:"VH_REDIS_PASSWORD"`
	RedisDB       int    `env:"VH_REDIS_DB" envDefault:"0"`

	KafkaBrokers      []string      `env:"VH_KAFKA_BROKERS" envSeparator:"," envDefault:"127.0.0.1:9092"`
	KafkaTopic        string        `env:"VH_KAFKA_TOPIC" envDefault:"moderation-events"`
	KafkaAsync        bool          `env:"VH_KAFKA_ASYNC" envDefault:"false"`
	KafkaBatchTimeout time.Duration `env:"VH_KAFKA_BATCH_TIMEOUT" envDefault:"100ms"`

	JWTAccessSecret  string `env:"VH_JWT_ACCESS_SECRET,required"`
	JWTRefreshSecret string `env:"VH_JWT_REFRESH_SECRET,required"`

	SMTPHost     string `env:"VH_SMTP_HOST"`
	SMTPPort     int    `env:"VH_SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"VH_SMTP_USERNAME"`
	SMTPPassword string `env:"VH_SMTP_PASSWORD"`
	SMTPFrom     string `env:"VH_SMTP_FROM"`

	// 存储操作的统一超时；计数补写的重试上限
	StoreTimeout  time.Duration `env:"VH_STORE_TIMEOUT" envDefault:"3s"`
	CounterRetry  int           `env:"VH_COUNTER_RETRY" envDefault:"3"`
	OutboxBatch   int           `env:"VH_OUTBOX_BATCH" envDefault:"200"`
	OutboxEvery   time.Duration `env:"VH_OUTBOX_EVERY" envDefault:"1s"`
	ReconcileSpec string        `env:"VH_RECONCILE_SPEC" envDefault:"@every 5m"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c *Config) IsDevelopment() bool { return c.Env == "development" }

func (c *Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// SMTPEnabled 未配置 SMTP 时邮件通知静默降级
func (c *Config) SMTPEnabled() bool { return c.SMTPHost != "" }
