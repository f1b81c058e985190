package config

import "time"

type Config struct {
	Port      string
	DSN       string
	JWTSecret string
	Shopify   ShopifyConfig
	SendGrid  SendGridConfig
}

type ShopifyConfig struct {
	ShopDomain string
	Token      string
	APIVer     string
	Timeout    time.Duration
}

type SendGridConfig struct {
	APIKey      string
	FromAddress string
}

// Load reads the full configuration from the environment. Shopify
// credentials and the JWT secret are required; everything else has a
// sensible default. godotenv runs in main before this is called.
func Load() (Config, error) {
	shopDomain, err := requiredString("SHOPIFY_SHOP_DOMAIN")
	if err != nil {
		return Config{}, err
	}
	shopToken, err := requiredString("SHOPIFY_ACCESS_TOKEN")
	if err != nil {
		return Config{}, err
	}
	jwtSecret, err := requiredString("JWT_SECRET")
	if err != nil {
		return Config{}, err
	}
	shopifyTimeout, err := durationWithDefault("SHOPIFY_TIMEOUT_SECONDS", 10*time.Second)
	if err != nil {
		return Config{}, err
	}

	return Config{
		Port:      stringWithDefault("PORT", "8080"),
		DSN:       stringWithDefault("DB_DSN", "root:root@tcp(127.0.0.1:3306)/linesheet?parseTime=true"),
		JWTSecret: jwtSecret,
		Shopify: ShopifyConfig{
			ShopDomain: shopDomain,
			Token:      shopToken,
			APIVer:     stringWithDefault("SHOPIFY_API_VERSION", "2025-07"),
			Timeout:    shopifyTimeout,
		},
		SendGrid: SendGridConfig{
			APIKey:      stringWithDefault("SENDGRID_API_KEY", ""),
			FromAddress: stringWithDefault("EMAIL_FROM", "noreply@linesheet.app"),
		},
	}, nil
}
