package address

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ encoding.TextMarshaler   = Address{}
	_ encoding.TextUnmarshaler = (*Address)(nil)
)

func TestFromBase58(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Address
		wantErr bool
	}{
		{"all ones is the zero address", "11111111111111111111111111111111", Address{}, false},
		{"not base58", "0OIl", Address{}, true},
		{"too short", "1111", Address{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromBase58(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAddress_StringRoundTrip(t *testing.T) {
	a := MustFromBase58("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")
	assert.Equal(t, "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA", a.String())

	text, err := a.MarshalText()
	require.NoError(t, err)
	var back Address
	require.NoError(t, back.UnmarshalText(text))
	assert.True(t, a.Equal(back))
}

func TestFromBytes(t *testing.T) {
	_, err := FromBytes(make([]byte, Size-1))
	require.ErrorIs(t, err, ErrInvalidAddressLen)

	in := make([]byte, Size)
	in[0] = 7
	a, err := FromBytes(in)
	require.NoError(t, err)
	assert.Equal(t, byte(7), a[0])

	// Bytes must not alias the address.
	b := a.Bytes()
	b[0] = 9
	assert.Equal(t, byte(7), a[0])
}

func TestAddress_Less(t *testing.T) {
	var lo, hi Address
	hi[0] = 1
	assert.True(t, lo.Less(hi))
	assert.False(t, hi.Less(lo))
	assert.False(t, lo.Less(lo))
	assert.True(t, lo.IsZero())
	assert.False(t, hi.IsZero())
}

func TestIsOnCurve_PublicKey(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	a, err := FromBytes(pub)
	require.NoError(t, err)
	assert.True(t, IsOnCurve(a))
}
