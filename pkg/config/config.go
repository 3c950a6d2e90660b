package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig     `mapstructure:"app"`
	DB      DBConfig      `mapstructure:"db"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Kafka   KafkaConfig   `mapstructure:"kafka"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Billing BillingConfig `mapstructure:"billing"`
	Worker  WorkerConfig  `mapstructure:"worker"`
}

type AppConfig struct {
	Env      string `mapstructure:"env"`
	HttpPort string `mapstructure:"http_port"`
}

type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	MQType   string `mapstructure:"mq_type"` // "redis" or "kafka"
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
}

type AuthConfig struct {
	JWTSecret    string `mapstructure:"jwt_secret"`
	TokenTTLMins int    `mapstructure:"token_ttl_mins"`
}

type BillingConfig struct {
	// OrderTTLMins: a draft order (new/pending) older than this is failed by the sweeper.
	OrderTTLMins int `mapstructure:"order_ttl_mins"`
	// UniversalCoupon bypasses the package-type restriction on coupons.
	UniversalCoupon string `mapstructure:"universal_coupon"`
	// Webhook secrets sign the provider callbacks (HMAC-SHA256 over the raw
	// body). Empty disables verification for that provider.
	BankWebhookSecret   string `mapstructure:"bank_webhook_secret"`
	PayPalWebhookSecret string `mapstructure:"paypal_webhook_secret"`
	VietQRWebhookSecret string `mapstructure:"vietqr_webhook_secret"`
	// IndexPointsPerURL is the base point cost per submitted URL, before the tier multiplier.
	IndexPointsPerURL int64 `mapstructure:"index_points_per_url"`
}

type WorkerConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

var Global Config

func Init() {
	viper.SetConfigName("config") // name of config file (without extension)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Printf("Warning: Config file not found, using defaults and environment variables")
		} else {
			log.Fatalf("Fatal error config file: %s \n", err)
		}
	}

	if err := viper.Unmarshal(&Global); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	log.Printf("Configuration loaded successfully. Env: %s", Global.App.Env)
}

func setDefaults() {
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.http_port", "8080")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.user", "points_user")
	viper.SetDefault("db.password", "points_password")
	viper.SetDefault("db.name", "points_db")

	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.mq_type", "redis")

	viper.SetDefault("kafka.brokers", []string{"localhost:9092"})

	viper.SetDefault("auth.jwt_secret", "dev-secret-change-me")
	viper.SetDefault("auth.token_ttl_mins", 1440)

	viper.SetDefault("billing.order_ttl_mins", 120)
	viper.SetDefault("billing.universal_coupon", "TRIAN20")
	viper.SetDefault("billing.index_points_per_url", 1)

	viper.SetDefault("worker.concurrency", 10)
}
