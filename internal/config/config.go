package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port               int      `mapstructure:"port"`
		CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
		CorsAllowedMethods []string `mapstructure:"cors_allowed_methods"`
		CorsAllowedHeaders []string `mapstructure:"cors_allowed_headers"`
	} `mapstructure:"server"`

	Database struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`

	JWT struct {
		Secret          string `mapstructure:"secret"`
		ExpirationHours int    `mapstructure:"expiration_hours"`
		Issuer          string `mapstructure:"issuer"`
	} `mapstructure:"jwt"`

	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`

	// Shop carries the billing identity printed on every bill and the
	// calculation policy applied by the valuation engine.
	Shop struct {
		Name                 string  `mapstructure:"name"`
		Prefix               string  `mapstructure:"prefix"`
		GSTIN                string  `mapstructure:"gstin"`
		Address              string  `mapstructure:"address"`
		Phone                string  `mapstructure:"phone"`
		IntraState           bool    `mapstructure:"intra_state"`
		ShopDeductionPercent float64 `mapstructure:"shop_deduction_percent"`
		GSTOnMetalPercent    float64 `mapstructure:"gst_on_metal_percent"`
		GSTOnMakingPercent   float64 `mapstructure:"gst_on_making_percent"`
	} `mapstructure:"shop"`
}

func Load() *Config {
	// Load .env file if exists (ignore error in production)
	godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile("configs/config.yaml")

	// Auto bind environment variables
	v.AutomaticEnv()

	// Set sensible defaults (binary works without config file)
	v.SetDefault("server.port", 8080)
	v.SetDefault("jwt.expiration_hours", 24)
	v.SetDefault("jwt.issuer", "jewel-backend")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "jewel_db")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("shop.name", "Shree Mahavir Jewellers")
	v.SetDefault("shop.prefix", "SMJ")
	v.SetDefault("shop.intra_state", true)
	v.SetDefault("shop.shop_deduction_percent", 3.0)
	v.SetDefault("shop.gst_on_metal_percent", 3.0)
	v.SetDefault("shop.gst_on_making_percent", 5.0)

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		log.Printf("[Config] No config file found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("config unmarshal error: %v", err)
	}

	// Override database settings from DB_* environment variables
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.Database.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			cfg.Database.Port = n
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.Database.User = user
	}
	if pass := os.Getenv("DB_PASSWORD"); pass != "" {
		cfg.Database.Password = pass
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.Database.Name = name
	}

	// Override JWT secret from environment if not set
	if cfg.JWT.Secret == "" || cfg.JWT.Secret == "${JWT_SECRET}" {
		cfg.JWT.Secret = os.Getenv("JWT_SECRET")
		if cfg.JWT.Secret == "" {
			log.Fatal("JWT_SECRET not found in config or environment")
		}
	}

	// Redis overrides
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
	}
	if pass := os.Getenv("REDIS_PASSWORD"); pass != "" {
		cfg.Redis.Password = pass
	}

	// Shop identity overrides for multi-tenant deployments
	if name := os.Getenv("SHOP_NAME"); name != "" {
		cfg.Shop.Name = name
	}
	if prefix := os.Getenv("SHOP_PREFIX"); prefix != "" {
		cfg.Shop.Prefix = prefix
	}
	if gstin := os.Getenv("SHOP_GSTIN"); gstin != "" {
		cfg.Shop.GSTIN = gstin
	}

	return &cfg
}
