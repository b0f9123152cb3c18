package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"seatq/config"
	"seatq/shared/constant"
)

func validConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.AccessSecret = "access"
	cfg.JWT.RefreshSecret = "refresh"
	cfg.Matching.StoreDriver = constant.StoreDriverMemory
	cfg.Matching.MaxCommitAttempts = 3

	return cfg
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *config.Config)
		wantErr []string
	}{
		{
			name:   "valid",
			mutate: func(_ *config.Config) {},
		},
		{
			name:    "missing secrets",
			mutate:  func(cfg *config.Config) { cfg.JWT.RefreshSecret = "" },
			wantErr: []string{"JWT_ACCESS_SECRET and JWT_REFRESH_SECRET are required"},
		},
		{
			name: "unknown driver and zero attempts",
			mutate: func(cfg *config.Config) {
				cfg.Matching.StoreDriver = "sqlite"
				cfg.Matching.MaxCommitAttempts = 0
			},
			wantErr: []string{`unknown MATCHING_STORE_DRIVER "sqlite"`, "MATCHING_MAX_COMMIT_ATTEMPTS must be at least 1"},
		},
		{
			name:    "kafka without brokers",
			mutate:  func(cfg *config.Config) { cfg.Kafka.Enable = true },
			wantErr: []string{"KAFKA_BROKERS is required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)

				return
			}

			for _, msg := range tt.wantErr {
				assert.ErrorContains(t, err, msg)
			}
		})
	}
}
