// Package profile reads and rewrites the key/value profile files of the
// navigation programs, keeping the original key order.
package profile

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iancoleman/orderedmap"
)

var ErrMissingKey = errors.New("missing profile key")

// Dialect selects how values are written.
type Dialect int

const (
	// Quoted writes Key="Value".
	Quoted Dialect = iota
	// Plain writes Key=Value.
	Plain
)

// rawPrefix marks entries holding an unparsed line; it cannot start a key.
const rawPrefix = "\x00"

type Profile struct {
	dialect Dialect
	values  *orderedmap.OrderedMap
	changed []string
	raw     int
}

func New(dialect Dialect) *Profile {
	return &Profile{dialect: dialect, values: orderedmap.New()}
}

// Read parses a profile. Lines that are not key/value pairs, such as comments
// and blank lines, are kept in place for Bytes.
func Read(r io.Reader, dialect Dialect) (*Profile, error) {
	p := New(dialect)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		raw := strings.TrimRight(sc.Text(), "\r")
		line := strings.TrimSpace(raw)
		k, v, ok := strings.Cut(line, "=")
		if line == "" || strings.HasPrefix(line, "#") || !ok {
			p.raw++
			p.values.Set(rawPrefix+strconv.Itoa(p.raw), raw)
			continue
		}
		v = strings.TrimSpace(v)
		if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
			v = v[1 : len(v)-1]
		}
		p.values.Set(strings.TrimSpace(k), v)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	return p, nil
}

func (p *Profile) Value(key string) (string, error) {
	v, ok := p.values.Get(key)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingKey, key)
	}
	return v.(string), nil
}

// Set updates a key, appending it when the profile did not know it yet.
func (p *Profile) Set(key, value string) {
	if old, ok := p.values.Get(key); ok && old.(string) == value {
		return
	}
	p.values.Set(key, value)
	p.changed = append(p.changed, key)
}

func (p *Profile) SetInt(key string, value int) {
	p.Set(key, fmt.Sprintf("%d", value))
}

func (p *Profile) SetBool(key string, value bool) {
	if value {
		p.Set(key, "1")
	} else {
		p.Set(key, "0")
	}
}

// Changed lists the keys Set modified, in order of modification.
func (p *Profile) Changed() []string {
	return p.changed
}

func (p *Profile) Keys() []string {
	var keys []string
	for _, k := range p.values.Keys() {
		if !strings.HasPrefix(k, rawPrefix) {
			keys = append(keys, k)
		}
	}
	return keys
}

func (p *Profile) Bytes() []byte {
	var b bytes.Buffer
	for _, k := range p.values.Keys() {
		v, _ := p.values.Get(k)
		switch {
		case strings.HasPrefix(k, rawPrefix):
			fmt.Fprintf(&b, "%s\r\n", v)
		case p.dialect == Quoted:
			// Quoted values have no escape; an inner quote would end the value.
			fmt.Fprintf(&b, "%s=\"%s\"\r\n", k, strings.ReplaceAll(v.(string), `"`, "'"))
		default:
			fmt.Fprintf(&b, "%s=%s\r\n", k, v)
		}
	}
	return b.Bytes()
}
