package profile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadQuoted(t *testing.T) {
	p, err := Read(strings.NewReader("MapFile=\"old.xcm\"\r\nRadius=\"500\"\r\n\r\nbroken line\r\n"), Quoted)
	require.NoError(t, err)

	v, err := p.Value("MapFile")
	require.NoError(t, err)
	assert.Equal(t, "old.xcm", v)

	_, err = p.Value("WPFile")
	assert.ErrorIs(t, err, ErrMissingKey)

	p.Set("Radius", "3000")
	p.Set("WPFile", "Condor.dat")
	p.Set("MapFile", "old.xcm")
	assert.Equal(t, []string{"Radius", "WPFile"}, p.Changed())
	assert.Equal(t, []string{"MapFile", "Radius", "WPFile"}, p.Keys())
	assert.Equal(t, "MapFile=\"old.xcm\"\r\nRadius=\"3000\"\r\n\r\nbroken line\r\nWPFile=\"Condor.dat\"\r\n", string(p.Bytes()))
}

func TestPlain(t *testing.T) {
	p := New(Plain)
	p.SetInt("StartRadius", 3000)
	p.SetBool("AATEnabled", true)
	assert.Equal(t, "StartRadius=3000\r\nAATEnabled=1\r\n", string(p.Bytes()))
	assert.Equal(t, []string{"StartRadius", "AATEnabled"}, p.Keys())
}

func TestRoundTripKeepsComments(t *testing.T) {
	in := "# LK8000 profile\r\nRadius=500\r\n\r\n  # map\r\nMapFile=Slovenia3.xcm\r\n[legacy]\r\n"
	p, err := Read(strings.NewReader(in), Plain)
	require.NoError(t, err)
	assert.Equal(t, in, string(p.Bytes()))

	p.SetInt("Radius", 1000)
	p.Set("WindSpeed", "18")
	assert.Equal(t, "# LK8000 profile\r\nRadius=1000\r\n\r\n  # map\r\nMapFile=Slovenia3.xcm\r\n[legacy]\r\nWindSpeed=18\r\n", string(p.Bytes()))
	assert.Equal(t, []string{"Radius", "MapFile", "WindSpeed"}, p.Keys())
}

func TestQuotedValueWithQuotes(t *testing.T) {
	p := New(Quoted)
	p.Set("Comment", `say "hi"`)
	assert.Equal(t, "Comment=\"say 'hi'\"\r\n", string(p.Bytes()))

	back, err := Read(strings.NewReader(string(p.Bytes())), Quoted)
	require.NoError(t, err)
	v, err := back.Value("Comment")
	require.NoError(t, err)
	assert.Equal(t, "say 'hi'", v)
}
