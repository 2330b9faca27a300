package config

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
)

func New() (Config, error) {
	privateKey, err := privateKeyFromEnv("PRIVATE_KEY")
	if err != nil {
		return Config{}, err
	}

	return Config{
		Environment: requireEnv("ENVIRONMENT"),
		Hostname:    requireEnv("HOSTNAME"),
		BasePath:    requireEnv("BASE_PATH"),
		UIUrl:       requireEnv("UI_URL"),
		PrivateKey:  privateKey,
		SMTP: smtp{
			Host:     requireEnv("SMTP_HOST"),
			Port:     requireEnvAsInt("SMTP_PORT"),
			Username: requireEnv("SMTP_USERNAME"),
			Password: requireEnv("SMTP_PASSWORD"),
		},
		Postgresql: Postgresql{
			Host:         requireEnv("DATABASE_HOST"),
			Port:         requireEnvAsInt("DATABASE_PORT"),
			Username:     requireEnv("DATABASE_USERNAME"),
			Password:     requireEnv("DATABASE_PASSWORD"),
			DatabaseName: requireEnv("DATABASE_NAME"),
		},
		Redis: redis{
			Host: requireEnv("REDIS_HOST"),
			Port: requireEnvAsInt("REDIS_PORT"),
		},
		AccessTokenTTL:        requireEnvAsInt("ACCESS_TOKEN_EXPIRATION_SECONDS"),
		RefreshTokenSecretKey: requireEnv("REFRESH_TOKEN_SECRET_KEY"),
		RefreshTokenTTL:       requireEnvAsInt("REFRESH_TOKEN_EXPIRATION_SECONDS"),
		PasswordTokenTTL:      uint(requireEnvAsInt("PASSWORD_TOKEN_EXPIRATION_SECONDS")),
	}, nil
}

type Config struct {
	Environment           string
	Hostname              string
	BasePath              string
	UIUrl                 string
	PrivateKey            *rsa.PrivateKey
	SMTP                  smtp
	Postgresql            Postgresql
	Redis                 redis
	AccessTokenTTL        int
	RefreshTokenSecretKey string
	RefreshTokenTTL       int
	PasswordTokenTTL      uint
}

type smtp struct {
	Host     string
	Port     int
	Username string
	Password string
}

type Postgresql struct {
	Host         string
	Port         int
	Username     string
	Password     string
	DatabaseName string
}

type redis struct {
	Host string
	Port int
}

func (r redis) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

func privateKeyFromEnv(key string) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode([]byte(requireEnv(key)))
	if block == nil {
		return nil, errors.New("failed to decode PEM block containing private key")
	}

	privateKey, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %v", err)
	}
	return privateKey, nil
}

func requireEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		log.Fatalf("Can't find environment variable: %s\n", key)
	}
	return value
}

func requireEnvAsInt(key string) int {
	valueStr := requireEnv(key)
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("Can't parse value as integer: %s", err.Error())
	}
	return value
}
