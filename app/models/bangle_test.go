package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizeListScan(t *testing.T) {
	var sizes SizeList
	require.NoError(t, sizes.Scan([]byte(`["2.4","2.6","2.8"]`)))
	assert.Equal(t, SizeList{"2.4", "2.6", "2.8"}, sizes)
}

func TestSizeListScanString(t *testing.T) {
	var sizes SizeList
	require.NoError(t, sizes.Scan(`["2.2"]`))
	assert.Equal(t, SizeList{"2.2"}, sizes)
}

// A size list is never null: bad JSON, JSON null and NULL columns all come
// back as an empty list.
func TestSizeListScanFallsBackToEmpty(t *testing.T) {
	for _, raw := range []interface{}{[]byte(`not-json`), []byte(`{"a":1}`), []byte(`null`), nil} {
		var sizes SizeList
		require.NoError(t, sizes.Scan(raw))
		assert.NotNil(t, sizes)
		assert.Empty(t, sizes)
	}
}

func TestSizeListValue(t *testing.T) {
	value, err := SizeList{"2.4", "2.6"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["2.4","2.6"]`, value)

	value, err = SizeList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, `[]`, value)
}
