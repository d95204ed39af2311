package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Port                          string `mapstructure:"PORT"`
	DatabasePath                  string `mapstructure:"DATABASE_PATH"`
	JWTSecret                     string `mapstructure:"JWT_SECRET"`
	ImagesDirectory               string `mapstructure:"IMAGES_DIRECTORY"`
	PublicImagePath               string `mapstructure:"PUBLIC_IMAGE_PATH"`
	SMTPHost                      string `mapstructure:"SMTP_HOST"`
	SMTPPort                      int    `mapstructure:"SMTP_PORT"`
	SMTPUsername                  string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword                  string `mapstructure:"SMTP_PASSWORD"`
	MailFrom                      string `mapstructure:"MAIL_FROM"`
	MailFromName                  string `mapstructure:"MAIL_FROM_NAME"`
	DiscordBotToken               string `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordNotificationsChannelID string `mapstructure:"DISCORD_NOTIFICATIONS_CHANNEL_ID"`
	EnableCORS                    bool   `mapstructure:"ENABLE_CORS"`
	LoginRateLimit                int    `mapstructure:"LOGIN_RATE_LIMIT"`
	LoginRateWindowSeconds        int    `mapstructure:"LOGIN_RATE_WINDOW_SECONDS"`
}

func LoadConfig() *Config {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DATABASE_PATH", "tours.db")
	viper.SetDefault("IMAGES_DIRECTORY", "public/images")
	viper.SetDefault("PUBLIC_IMAGE_PATH", "/api/images")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("MAIL_FROM", "noreply@azurvoyages.example")
	viper.SetDefault("LOGIN_RATE_LIMIT", 5)
	viper.SetDefault("LOGIN_RATE_WINDOW_SECONDS", 60)

	viper.BindEnv("JWT_SECRET")
	viper.BindEnv("IMAGES_DIRECTORY")
	viper.BindEnv("PUBLIC_IMAGE_PATH")
	viper.BindEnv("SMTP_HOST")
	viper.BindEnv("SMTP_PORT")
	viper.BindEnv("SMTP_USERNAME")
	viper.BindEnv("SMTP_PASSWORD")
	viper.BindEnv("MAIL_FROM")
	viper.BindEnv("MAIL_FROM_NAME")
	viper.BindEnv("DISCORD_BOT_TOKEN")
	viper.BindEnv("DISCORD_NOTIFICATIONS_CHANNEL_ID")
	viper.BindEnv("ENABLE_CORS")
	viper.BindEnv("LOGIN_RATE_LIMIT")
	viper.BindEnv("LOGIN_RATE_WINDOW_SECONDS")

	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	return &config
}
