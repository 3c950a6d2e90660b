package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeURLs(t *testing.T) {
	tests := []struct {
		name         string
		in           []string
		wantAccepted []string
		wantRejected []string
	}{
		{
			name:         "plain http and https pass",
			in:           []string{"https://example.com/a", "http://example.com/b"},
			wantAccepted: []string{"https://example.com/a", "http://example.com/b"},
		},
		{
			name:         "whitespace is trimmed",
			in:           []string{"  https://example.com/a  "},
			wantAccepted: []string{"https://example.com/a"},
		},
		{
			name:         "duplicates collapse without being rejected",
			in:           []string{"https://example.com/a", "https://example.com/a"},
			wantAccepted: []string{"https://example.com/a"},
		},
		{
			name:         "wrong scheme is rejected",
			in:           []string{"ftp://example.com/a", "example.com/relative"},
			wantRejected: []string{"ftp://example.com/a", "example.com/relative"},
		},
		{
			name:         "scheme without host is rejected",
			in:           []string{"https://", "http:///path"},
			wantRejected: []string{"https://", "http:///path"},
		},
		{
			name:         "mixed batch",
			in:           []string{"https://a.com", "not a url", "https://a.com", "http://b.com"},
			wantAccepted: []string{"https://a.com", "http://b.com"},
			wantRejected: []string{"not a url"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accepted, rejected := normalizeURLs(tt.in)
			assert.Equal(t, tt.wantAccepted, accepted)
			assert.Equal(t, tt.wantRejected, rejected)
		})
	}
}
