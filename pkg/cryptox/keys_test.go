package cryptox_test

import (
	"crypto/ed25519"
	"encoding/pem"
	"testing"

	"github.com/aussiebroadwan/qasurvey/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestGenerateEd25519Key_RoundTrip(t *testing.T) {
	pemBytes, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)

	block, _ := pem.Decode(pemBytes)
	require.NotNil(t, block)
	require.Equal(t, "PRIVATE KEY", block.Type)

	key, err := cryptox.ParseEd25519Key(pemBytes)
	require.NoError(t, err)
	require.Len(t, key, ed25519.PrivateKeySize)
}

func TestParseEd25519Key_Rejects(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
	}{
		{"not pem", []byte("definitely not a key")},
		{"wrong block type", pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: []byte{1, 2, 3}})},
		{"garbage pkcs8", pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: []byte{1, 2, 3}})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cryptox.ParseEd25519Key(tt.in)
			require.Error(t, err)
		})
	}
}

func TestGenerateToken(t *testing.T) {
	for _, size := range []int{cryptox.TokenSize128, cryptox.TokenSize256, cryptox.TokenSize512} {
		a, err := cryptox.GenerateToken(size)
		require.NoError(t, err)
		b, err := cryptox.GenerateToken(size)
		require.NoError(t, err)
		require.NotEqual(t, a, b, "tokens should be unique")
	}

	_, err := cryptox.GenerateToken(0)
	require.Error(t, err)
}
