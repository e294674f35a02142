package sso

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateRoundTrip(t *testing.T) {
	testCases := []string{
		"google",
		"corp-okta",
		"with spaces and ünïcode",
		"",
	}

	for _, name := range testCases {
		t.Run(name, func(t *testing.T) {
			decoded, err := DecodeState(EncodeState(name))
			require.NoError(t, err)
			assert.Equal(t, name, decoded)
		})
	}
}

func TestDecodeStateInvalid(t *testing.T) {
	_, err := DecodeState("%%% not base64 %%%")
	assert.Error(t, err)
}
