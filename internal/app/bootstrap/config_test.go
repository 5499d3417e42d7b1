package bootstrap

import (
	"testing"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

func validAppConfig() AppConfig {
	return AppConfig{
		MongoURI:       "mongodb://localhost:27017",
		MongoDatabase:  "challenge_hub",
		AuthSigningKey: "a-real-signing-key-0123456789",
		JoinRateLimit:  30,
		JoinRateWindow: time.Minute,
	}
}

func TestValidateConfig(t *testing.T) {
	logger := zap.NewNop()

	tests := []struct {
		name    string
		env     string
		mutate  func(*AppConfig)
		wantErr bool
	}{
		{"valid dev", "dev", nil, false},
		{"valid prod", "prod", nil, false},
		{"bad mongo uri", "dev", func(c *AppConfig) { c.MongoURI = "not-a-uri" }, true},
		{"dev key in prod", "prod", func(c *AppConfig) { c.AuthSigningKey = devSigningKey }, true},
		{"dev key in dev", "dev", func(c *AppConfig) { c.AuthSigningKey = devSigningKey }, false},
		{"zero rate limit", "dev", func(c *AppConfig) { c.JoinRateLimit = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appCfg := validAppConfig()
			if tt.mutate != nil {
				tt.mutate(&appCfg)
			}
			err := ValidateConfig(&config.CoreConfig{Env: tt.env}, appCfg, logger)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
