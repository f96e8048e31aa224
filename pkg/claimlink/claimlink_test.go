package claimlink

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLinkRoundTrip(t *testing.T) {
	issuedAt := time.Now().UTC()
	s := NewSigner("secret", "https://gift.example", 720*time.Hour)

	link, err := s.Link("voucher-123", issuedAt)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(link, "https://gift.example/claim?token="))

	u, err := url.Parse(link)
	require.NoError(t, err)
	token := u.Query().Get("token")
	require.NotEmpty(t, token)

	voucherID, err := s.Parse(token, issuedAt.Add(24*time.Hour))
	require.NoError(t, err)
	require.Equal(t, "voucher-123", voucherID)
}

func TestParse_RejectsWrongSecret(t *testing.T) {
	issuedAt := time.Now().UTC()
	s := NewSigner("secret", "https://gift.example", time.Hour)
	link, err := s.Link("voucher-123", issuedAt)
	require.NoError(t, err)
	token := strings.TrimPrefix(link, "https://gift.example/claim?token=")

	other := NewSigner("different", "https://gift.example", time.Hour)
	_, err = other.Parse(token, issuedAt)
	require.Error(t, err)
}

func TestParse_RejectsTampering(t *testing.T) {
	s := NewSigner("secret", "https://gift.example", time.Hour)
	link, err := s.Link("voucher-123", time.Now().UTC())
	require.NoError(t, err)
	token := strings.TrimPrefix(link, "https://gift.example/claim?token=")

	_, err = s.Parse(token+"x", time.Now().UTC())
	require.Error(t, err)
}

func TestNewSigner_DefaultTTL(t *testing.T) {
	s := NewSigner("secret", "https://gift.example", 0)
	require.Equal(t, 30*24*time.Hour, s.ttl)
}
