package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kat-co/vala"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Debug            bool
		TestMode         bool
		Env              string // DEV (default), TEST, QA, PROD
		Build            string
		AppName          string
		SecretKey        string
		FrontendBaseURL  string
		DefaultFromEmail mail.Address
		SendgridAPIKey   string
		RollbarToken     string

		Admin  AdminConfig
		Server ServerConfig
	}

	// AdminConfig holds the back-office allow-list credential.
	// PasswordHash takes precedence over Password when set; otherwise Password
	// is hashed at startup.
	AdminConfig struct {
		Email        string
		Password     string
		PasswordHash string
	}

	ServerConfig struct {
		Host               string
		Port               string
		JWTExpirationDelta time.Duration
		SessionCookieName  string
		SessionHashKey     string
		SessionBlockKey    string
	}
)

func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// Check validates that config values required at runtime are present.
func (c *Config) Check() error {
	return vala.BeginValidation().Validate(
		vala.StringNotEmpty(c.AppName, "appName"),
		vala.StringNotEmpty(c.SecretKey, "secretKey"),
		vala.StringNotEmpty(c.Admin.Email, "adminEmail"),
		vala.StringNotEmpty(c.Server.Port, "serverPort"),
		vala.StringNotEmpty(c.Server.SessionCookieName, "sessionCookieName"),
		vala.StringNotEmpty(c.Server.SessionHashKey, "sessionHashKey"),
	).Check()
}

// NewConfig loads configuration from defaults, an optional .env file and
// ENV-prefixed environment variables, in increasing order of precedence.
func NewConfig(rootDir string) *Config {
	conf := viper.New()
	conf.SetTypeByDefaultValue(true)

	// defaults
	conf.SetDefault("debug", true)
	conf.SetDefault("testMode", false)
	conf.SetDefault("build", "dev")
	conf.SetDefault("appName", "Space Academy")
	conf.SetDefault("secretKey", "q2b$8sh)e1u7#yt^$ce0m&ac!pdx5(h2(h!x)#*gm4em3")
	conf.SetDefault("frontendBaseURL", "http://localhost:5173")
	conf.SetDefault("defaultFromEmail", "noreply@spaceacademy.com")
	conf.SetDefault("sendgridApiKey", "")
	conf.SetDefault("rollbarToken", "")

	conf.SetDefault("adminEmail", "admin@spaceacademy.com")
	conf.SetDefault("adminPassword", "password")
	conf.SetDefault("adminPasswordHash", "")

	conf.SetDefault("serverHost", "")
	conf.SetDefault("serverPort", "8000")
	conf.SetDefault("jwtExpirationDelta", 7*24*time.Hour)
	conf.SetDefault("sessionCookieName", "spaceacademy_session")
	conf.SetDefault("sessionHashKey", "ju7at#0d-hx2(hq5w8e6r)enb$+57=dz&uo3h9(h4x)#*c6")
	conf.SetDefault("sessionBlockKey", "") // 16/24/32 bytes enables cookie encryption

	env := os.Getenv("ENV")
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(rootDir, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	appName := conf.GetString("appName")
	return &Config{
		Debug:            conf.GetBool("debug"),
		TestMode:         conf.GetBool("testMode"),
		Env:              env,
		Build:            conf.GetString("build"),
		AppName:          appName,
		SecretKey:        conf.GetString("secretKey"),
		FrontendBaseURL:  conf.GetString("frontendBaseURL"),
		DefaultFromEmail: mail.Address{Name: appName, Address: conf.GetString("defaultFromEmail")},
		SendgridAPIKey:   conf.GetString("sendgridApiKey"),
		RollbarToken:     conf.GetString("rollbarToken"),
		Admin: AdminConfig{
			Email:        conf.GetString("adminEmail"),
			Password:     conf.GetString("adminPassword"),
			PasswordHash: conf.GetString("adminPasswordHash"),
		},
		Server: ServerConfig{
			Host:               conf.GetString("serverHost"),
			Port:               conf.GetString("serverPort"),
			JWTExpirationDelta: conf.GetDuration("jwtExpirationDelta"),
			SessionCookieName:  conf.GetString("sessionCookieName"),
			SessionHashKey:     conf.GetString("sessionHashKey"),
			SessionBlockKey:    conf.GetString("sessionBlockKey"),
		},
	}
}
