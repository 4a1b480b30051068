package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		format  string
		wantErr bool
	}{
		{name: "debug console", level: "debug", format: "console"},
		{name: "info json", level: "info", format: "json"},
		{name: "warn console", level: "warn", format: "console"},
		{name: "error json", level: "error", format: "json"},
		{name: "unknown level", level: "verbose", format: "console", wantErr: true},
		{name: "unknown format", level: "info", format: "logfmt", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := SetupLogger(tt.level, tt.format)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
		})
	}
}
