package cashstamp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	id, qrDataURL, err := Generate("bchtest:qpayout", 0.0025)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "cs_"))
	assert.True(t, strings.HasPrefix(qrDataURL, "data:image/png;base64,"))
}

func TestGenerate_UniqueIDs(t *testing.T) {
	first, _, err := Generate("bchtest:qpayout", 0.001)
	require.NoError(t, err)

	second, _, err := Generate("bchtest:qpayout", 0.001)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
