package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeWhatsAppPhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"sp nine digits", "11988887777", "5511988887777@s.whatsapp.net"},
		{"sp eight digits gains nine", "1188887777", "5511988887777@s.whatsapp.net"},
		{"bh eight digits", "3133334444", "553133334444@s.whatsapp.net"},
		{"bh nine digits loses nine", "31933334444", "553133334444@s.whatsapp.net"},
		{"already prefixed", "5511988887777", "5511988887777@s.whatsapp.net"},
		{"formatted input", "+55 (11) 98888-7777", "5511988887777@s.whatsapp.net"},
		{"ddd 55 not treated as prefix", "5599998888", "555599998888@s.whatsapp.net"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeWhatsAppPhone(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeWhatsAppPhoneRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"too short", "1199"},
		{"too long", "119888877776666"},
		{"invalid ddd", "0188887777"},
		{"bh nine digits not starting with nine", "31833334444"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeWhatsAppPhone(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidPhone))
		})
	}
}
