package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGRPCEndpoint(t *testing.T) {
	const def = "vision.googleapis.com:443"
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", def, false},
		{"Default", def, false},
		{"https://generativelanguage.googleapis.com/", "generativelanguage.googleapis.com:443", false},
		{"eu-vision.googleapis.com", "eu-vision.googleapis.com:443", false},
		{"localhost:8443", "localhost:8443", false},
		{"https://", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := GRPCEndpoint(tt.in, def)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
