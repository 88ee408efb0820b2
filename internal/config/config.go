package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	ProviderResend = "resend"
	ProviderSMTP   = "smtp"
)

type Config struct {
	Server ServerConfig
	CORS   CORSConfig
	Email  EmailConfig
	Resend ResendConfig
	SMTP   SMTPConfig
}

type ServerConfig struct {
	Port            string
	ShutdownTimeout time.Duration
	BodyLimit       int
	StaticDir       string
	Environment     string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// EmailConfig holds what every notification shares regardless of backend.
type EmailConfig struct {
	Provider          string
	Recipient         string
	AppointmentSender string
	ContactSender     string
	SendTimeout       time.Duration
}

type ResendConfig struct {
	APIKey  string
	BaseURL string
}

type SMTPConfig struct {
	Host          string
	Port          int
	Username      string
	Password      string
	TLSSkipVerify bool
}

var defaultOrigins = []string{
	"https://dentalartdelhi.com",
	"https://www.dentalartdelhi.com",
	"http://localhost:5173",
}

func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            loadEnv("PORT", "10000"),
			ShutdownTimeout: time.Duration(loadEnvAsInt("SERVER_SHUTDOWN_TIMEOUT", 5)) * time.Second,
			BodyLimit:       loadEnvAsInt("SERVER_BODY_LIMIT", 1024*1024),
			StaticDir:       loadEnv("STATIC_DIR", "dist"),
			Environment:     loadEnv("GO_ENV", "development"),
		},
		CORS: CORSConfig{
			AllowedOrigins: loadEnvAsList("ALLOWED_ORIGINS", defaultOrigins),
		},
		Email: EmailConfig{
			Provider:          strings.ToLower(loadEnv("EMAIL_PROVIDER", ProviderResend)),
			Recipient:         loadEnv("EMAIL_RECIPIENT", "drtarakhilnanidentalart@gmail.com"),
			AppointmentSender: loadEnv("APPOINTMENT_SENDER", "Appointments <appointments@dentalartdelhi.com>"),
			ContactSender:     loadEnv("CONTACT_SENDER", "Contacts <info@dentalartdelhi.com>"),
			SendTimeout:       time.Duration(loadEnvAsInt("EMAIL_SEND_TIMEOUT", 15)) * time.Second,
		},
		Resend: ResendConfig{
			APIKey:  loadEnv("RESEND_API_KEY", ""),
			BaseURL: loadEnv("RESEND_API_URL", "https://api.resend.com"),
		},
		SMTP: SMTPConfig{
			Host:          loadEnv("EMAIL_HOST", "smtp.gmail.com"),
			Port:          loadEnvAsInt("EMAIL_PORT", 587),
			Username:      loadEnv("EMAIL_USER", ""),
			Password:      loadEnv("EMAIL_PASSWORD", ""),
			TLSSkipVerify: loadEnvAsBool("EMAIL_TLS_SKIP_VERIFY", false),
		},
	}
}

// Validate reports the first setting that would keep the server from
// doing its job. It is called once at startup.
func (c *Config) Validate() error {
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return fmt.Errorf("invalid PORT %q: %w", c.Server.Port, err)
	}

	for _, origin := range c.CORS.AllowedOrigins {
		u, err := url.Parse(origin)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid allowed origin %q", origin)
		}
	}

	if c.Email.Recipient == "" {
		return fmt.Errorf("EMAIL_RECIPIENT is required")
	}

	switch c.Email.Provider {
	case ProviderResend:
		if c.Resend.APIKey == "" {
			return fmt.Errorf("email configuration not complete: RESEND_API_KEY is required")
		}
	case ProviderSMTP:
		var missing []string
		if c.SMTP.Host == "" {
			missing = append(missing, "EMAIL_HOST")
		}
		if c.SMTP.Username == "" {
			missing = append(missing, "EMAIL_USER")
		}
		if c.SMTP.Password == "" {
			missing = append(missing, "EMAIL_PASSWORD")
		}
		if len(missing) > 0 {
			return fmt.Errorf("email configuration not complete: missing %s", strings.Join(missing, ", "))
		}
	default:
		return fmt.Errorf("unknown EMAIL_PROVIDER %q", c.Email.Provider)
	}

	return nil
}

// Addr is the listen address for the configured port.
func (c *Config) Addr() string {
	return ":" + c.Server.Port
}

func loadEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func loadEnvAsInt(key string, defaultVal int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func loadEnvAsBool(key string, defaultVal bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultVal
}

// loadEnvAsList splits a comma separated variable, dropping blank entries.
func loadEnvAsList(key string, defaultVal []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return append([]string(nil), defaultVal...)
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
