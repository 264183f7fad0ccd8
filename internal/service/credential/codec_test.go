package credential

import (
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/credential"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantID     string
		wantToken  string
		wantFormat credential.Format
	}{
		{
			name:       "canonical json",
			raw:        `{"id":"123","token":"abc"}`,
			wantID:     "123",
			wantToken:  "abc",
			wantFormat: credential.FormatJSON,
		},
		{
			name:       "numeric id",
			raw:        `{"id":123,"token":"abc"}`,
			wantID:     "123",
			wantToken:  "abc",
			wantFormat: credential.FormatJSON,
		},
		{
			name:       "surrounding whitespace",
			raw:        "  {\"id\":\"123\",\"token\":\"abc\"}\n",
			wantID:     "123",
			wantToken:  "abc",
			wantFormat: credential.FormatJSON,
		},
		{
			name:       "driver url",
			raw:        "https://app.example.com/mobile-driver?nik=123",
			wantID:     "123",
			wantToken:  credential.TokenAssertedByURL,
			wantFormat: credential.FormatURLNIK,
		},
		{
			name:       "hash routed driver url",
			raw:        "https://app.example.com/#/driver-view?nik=456",
			wantID:     "456",
			wantToken:  credential.TokenAssertedByURL,
			wantFormat: credential.FormatURLNIK,
		},
		{
			name:       "compact absolute",
			raw:        "https://app.example.com/q/tok123",
			wantID:     credential.IdentityFromToken,
			wantToken:  "tok123",
			wantFormat: credential.FormatCompact,
		},
		{
			name:       "compact relative",
			raw:        "/q/tok123/",
			wantID:     credential.IdentityFromToken,
			wantToken:  "tok123",
			wantFormat: credential.FormatCompact,
		},
		{
			name:       "percent encoded data param",
			raw:        "https://app.example.com/scan?data=%7B%22id%22%3A%22123%22%2C%22token%22%3A%22abc%22%7D",
			wantID:     "123",
			wantToken:  "abc",
			wantFormat: credential.FormatURLData,
		},
		{
			name:       "qr param",
			raw:        "https://app.example.com/scan?qr=%7B%22id%22%3A77%2C%22token%22%3A%22xyz%22%7D",
			wantID:     "77",
			wantToken:  "xyz",
			wantFormat: credential.FormatURLData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cred, err := Decode(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, cred.EmployeeID)
			assert.Equal(t, tt.wantToken, cred.Token)
			assert.Equal(t, tt.wantFormat, cred.Format)
		})
	}
}

func TestDecode_Failures(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantReason string
	}{
		{"empty", "", credential.ReasonBlank},
		{"whitespace", "   \t ", credential.ReasonBlank},
		{"broken json", `{"id":"123"`, credential.ReasonMalformedJSON},
		{"trailing garbage", `{"id":"1","token":"t"} trailing garbage`, credential.ReasonMalformedJSON},
		{"two objects", `{"id":"1","token":"t"}{"id":"2","token":"u"}`, credential.ReasonMalformedJSON},
		{"oversized", `{"id":"1","token":"` + strings.Repeat("a", MaxPayloadBytes) + `"}`, credential.ReasonTooLarge},
		{"missing token", `{"id":"123"}`, credential.ReasonMissingFields},
		{"empty id", `{"id":"","token":"abc"}`, credential.ReasonMissingFields},
		{"non scalar id", `{"id":{"v":1},"token":"abc"}`, credential.ReasonMissingFields},
		{"nik outside driver path", "https://app.example.com/profile?nik=123", credential.ReasonUnrecognizedFormat},
		{"plain text", "hello", credential.ReasonUnrecognizedFormat},
		{"data param not json", "https://app.example.com/scan?data=hello", credential.ReasonMalformedJSON},
		{"data param missing fields", "https://app.example.com/scan?data=%7B%22id%22%3A%22123%22%7D", credential.ReasonMissingFields},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.raw)
			require.Error(t, err)

			de, ok := credential.AsDecodeError(err)
			require.True(t, ok, "expected DecodeError, got %T", err)
			assert.Equal(t, tt.wantReason, de.Reason)
		})
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	for _, id := range []string{"123", "EMP-0001", "a.b_c"} {
		cred, err := Decode(Encode(id, "0123456789abcdef"))
		require.NoError(t, err)
		assert.Equal(t, credential.Credential{EmployeeID: id, Token: "0123456789abcdef", Format: credential.FormatJSON}, cred)
	}
}

func TestEncode_RoundTripPadded(t *testing.T) {
	payload := Encode(" 1", "tok ")
	assert.Equal(t, `{"id":"1","token":"tok"}`, payload)

	cred, err := Decode(payload)
	require.NoError(t, err)
	assert.Equal(t, Encode(cred.EmployeeID, cred.Token), payload)
}

func TestIssuer(t *testing.T) {
	clk := clock.NewFake(time.Date(2024, 3, 15, 7, 0, 0, 0, time.UTC))

	issuer, err := NewIssuer("shared-secret", clk)
	require.NoError(t, err)

	first, err := issuer.Issue("123")
	require.NoError(t, err)
	assert.Len(t, first, TokenLength)

	again, err := issuer.Issue("123")
	require.NoError(t, err)
	assert.Equal(t, first, again, "same employee and instant must give the same token")

	clk.Advance(time.Second)
	later, err := issuer.Issue("123")
	require.NoError(t, err)
	assert.NotEqual(t, first, later)
	assert.Len(t, later, TokenLength)

	other, err := issuer.Issue("456")
	require.NoError(t, err)
	assert.NotEqual(t, later, other)

	_, err = issuer.Issue("  ")
	assert.ErrorIs(t, err, credential.ErrEmptyEmployeeID)
}

func TestIssuer_SecretMatters(t *testing.T) {
	clk := clock.NewFake(time.Date(2024, 3, 15, 7, 0, 0, 0, time.UTC))

	a, err := NewIssuer("secret-a", clk)
	require.NoError(t, err)
	b, err := NewIssuer("secret-b", clk)
	require.NoError(t, err)

	ta, _ := a.Issue("123")
	tb, _ := b.Issue("123")
	assert.NotEqual(t, ta, tb)

	long, err := NewIssuer(string(make([]byte, 100)), clk)
	require.NoError(t, err)
	tl, err := long.Issue("123")
	require.NoError(t, err)
	assert.Len(t, tl, TokenLength)

	_, err = NewIssuer("", clk)
	assert.ErrorIs(t, err, credential.ErrIssuerMissingKey)
}
