package wallet

import (
	"encoding/hex"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketCommitment(t *testing.T) {
	t.Run("encodes event, attendee and signup prefix", func(t *testing.T) {
		got := TicketCommitment("Salsa Night", "Alex", "11111111-2222-3333-4444-555555555555")

		decoded, err := hex.DecodeString(got)
		require.NoError(t, err)

		parts := strings.Split(string(decoded), "|")
		require.Len(t, parts, 3)
		assert.Equal(t, "Salsa Night", parts[0])
		assert.Equal(t, "Alex", parts[1])
		assert.Equal(t, "11111111", parts[2])
	})

	t.Run("never exceeds the commitment cap", func(t *testing.T) {
		longEvent := strings.Repeat("Bachata Sensual Masterclass ", 10)
		longName := strings.Repeat("Maximiliana Fernandez de la Cruz ", 10)

		got := TicketCommitment(longEvent, longName, "aaaabbbb-cccc-dddd-eeee-ffffffffffff")

		decoded, err := hex.DecodeString(got)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(decoded), MaxCommitmentBytes)

		// The signup prefix survives the clipping.
		assert.True(t, strings.HasSuffix(string(decoded), "|aaaabbbb"))
	})

	t.Run("does not split multibyte runes", func(t *testing.T) {
		got := TicketCommitment(strings.Repeat("é", 30), strings.Repeat("ü", 30), "aaaabbbb-cccc-dddd-eeee-ffffffffffff")

		decoded, err := hex.DecodeString(got)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(decoded), MaxCommitmentBytes)

		for _, part := range strings.Split(string(decoded), "|") {
			assert.True(t, utf8.ValidString(part), "part %q is not valid utf-8", part)
		}
	})

	t.Run("handles empty names", func(t *testing.T) {
		got := TicketCommitment("", "", "aaaabbbb-cccc-dddd-eeee-ffffffffffff")

		decoded, err := hex.DecodeString(got)
		require.NoError(t, err)
		assert.Equal(t, "||aaaabbbb", string(decoded))
	})
}
