package config

import (
	"testing"
)

func validConfig() *Config {
	return &Config{
		Audit: AuditConfig{
			URL:            "http://localhost:8000",
			TimeoutSeconds: 30,
		},
		Upload: UploadConfig{
			MaxFileSizeMB:     25,
			AllowedExtensions: []string{".pdf", ".csv"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing URL",
			mutate:  func(c *Config) { c.Audit.URL = "" },
			wantErr: true,
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Audit.TimeoutSeconds = 0 },
			wantErr: true,
		},
		{
			name:    "negative max file size",
			mutate:  func(c *Config) { c.Upload.MaxFileSizeMB = -1 },
			wantErr: true,
		},
		{
			name:    "extension without dot",
			mutate:  func(c *Config) { c.Upload.AllowedExtensions = []string{"pdf"} },
			wantErr: true,
		},
		{
			name:    "invalid logging level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "invalid logging format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: true,
		},
		{
			name:    "json format valid",
			mutate:  func(c *Config) { c.Logging.Format = "json" },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
