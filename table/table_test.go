package table

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sceneries = `# landscape, map, utc offset, origin lat, origin lon, country
Slovenia3, Slovenia3.xcm, 1, 46.0, 14.0, SI
AA3, AA3.xcm, 1, 47.2, 11.4
`

func TestRow(t *testing.T) {
	tbl, err := Read("sceneries", strings.NewReader(sceneries))
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Len())

	row, err := tbl.Row("slovenia3", 0, true)
	require.NoError(t, err)
	assert.Equal(t, "Slovenia3.xcm", row[1])
	assert.Len(t, row, 6)

	_, err = tbl.Row("slovenia3", 0, false)
	assert.ErrorIs(t, err, ErrNoMatch)

	row, err = tbl.Row("AA3.xcm", 1, false)
	require.NoError(t, err)
	assert.Equal(t, "AA3", row[0])

	_, err = tbl.Row("SI", 5, false)
	require.NoError(t, err)
	_, err = tbl.Row("x", 9, true)
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestReadMalformed(t *testing.T) {
	_, err := Read("gliders", strings.NewReader("ASW-28,\"325\n"))
	assert.Error(t, err)
}
