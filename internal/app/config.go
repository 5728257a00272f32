package app

import (
	"time"

	"github.com/sarun2104/training-app/internal/pkg/envutil"
)

type Config struct {
	JWTSecretKey   string
	AccessTokenTTL time.Duration
	PassingScore   float64
	HTTPAddr       string
}

func LoadConfig() Config {
	accessTokenTTLSeconds := envutil.Int("ACCESS_TOKEN_TTL", 3600)
	return Config{
		JWTSecretKey:   envutil.String("JWT_SECRET_KEY", "defaultsecret"),
		AccessTokenTTL: time.Duration(accessTokenTTLSeconds) * time.Second,
		PassingScore:   envutil.Float("QUIZ_PASSING_SCORE", 70.0),
		HTTPAddr:       envutil.String("HTTP_ADDR", ":8080"),
	}
}
