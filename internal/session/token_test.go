package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCodecRoundTrip(t *testing.T) {
	codec := NewTokenCodec("unit-test-secret")

	token, err := codec.Encode("session-id-1", time.Now().Add(time.Hour))
	require.NoError(t, err)

	sessionID, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "session-id-1", sessionID)
}

func TestTokenCodecRejectsTampering(t *testing.T) {
	codec := NewTokenCodec("unit-test-secret")

	token, err := codec.Encode("session-id-1", time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = codec.Decode(token + "x")
	assert.Error(t, err)

	other := NewTokenCodec("a-different-secret")
	_, err = other.Decode(token)
	assert.Error(t, err, "token signed with another secret must not verify")
}

func TestTokenCodecRejectsExpired(t *testing.T) {
	codec := NewTokenCodec("unit-test-secret")

	token, err := codec.Encode("session-id-1", time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = codec.Decode(token)
	assert.Error(t, err)
}
