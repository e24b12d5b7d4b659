package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ProjectID                    string
	Port                         string
	AllowedOrigins               []string
	StorageBucket                string
	StripeSecretKey              string
	StripeWebhookSecret          string
	SignedURLServiceAccountEmail string

	RedisAddr       string
	SessionCacheTTL time.Duration

	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	MailFrom string
}

func Load() Config {
	projectID := getenv("FIREBASE_PROJECT_ID", "")
	if projectID == "" {
		projectID = getenv("GOOGLE_CLOUD_PROJECT", "")
	}

	port := getenv("PORT", "8080")
	origins := getenv("ALLOWED_ORIGINS", "http://localhost:3000")
	storageBucket := getenv("FIREBASE_STORAGE_BUCKET", "")
	if storageBucket == "" && projectID != "" {
		storageBucket = projectID + ".appspot.com"
	}

	ttl := 60 * time.Second
	if v := getenv("SESSION_CACHE_TTL_SECONDS", ""); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			ttl = time.Duration(secs) * time.Second
		}
	}

	allowed := []string{}
	for _, o := range strings.Split(origins, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			allowed = append(allowed, o)
		}
	}

	return Config{
		ProjectID:                    projectID,
		Port:                         port,
		AllowedOrigins:               allowed,
		StorageBucket:                storageBucket,
		StripeSecretKey:              getenv("STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret:          getenv("STRIPE_WEBHOOK_SECRET", ""),
		SignedURLServiceAccountEmail: getenv("SIGNED_URL_SERVICE_ACCOUNT_EMAIL", ""),
		RedisAddr:                    getenv("REDIS_ADDR", ""),
		SessionCacheTTL:              ttl,
		SMTPHost:                     getenv("SMTP_HOST", ""),
		SMTPPort:                     getenv("SMTP_PORT", "587"),
		SMTPUser:                     getenv("SMTP_USER", ""),
		SMTPPass:                     getenv("SMTP_PASS", ""),
		MailFrom:                     getenv("MAIL_FROM", "no-reply@fitsyncpro.app"),
	}
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
