package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDomain(t *testing.T) {
	tests := []struct {
		domain  string
		wantErr string
	}{
		{"example.com", ""},
		{"sub.example.com", ""},
		{"my-site.example.com", ""},

		{"", "domain required"},

		{"localhost", "public domain"},
		{"LOCALHOST", "public domain"},

		{"127.0.0.1", "domain name, not an IP"},
		{"192.168.1.1", "domain name, not an IP"},
		{"::1", "domain name, not an IP"},
		{"2001:db8::1", "domain name, not an IP"},

		{"example..com", "invalid domain"},
		{".example.com", "invalid domain"},
		{"example.com.", "invalid domain"},
		{"-example.com", "invalid domain"},
	}

	for _, tt := range tests {
		t.Run(tt.domain, func(t *testing.T) {
			err := ValidateDomain(tt.domain)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
