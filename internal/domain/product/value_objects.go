package product

import (
	"errors"
	"sort"
	"strings"
)

var ErrNegativePrice = errors.New("price cannot be negative")

// Options maps an option name to its value, e.g. Color -> Black.
type Options map[string]string

func (o Options) Clone() Options {
	if o == nil {
		return nil
	}
	out := make(Options, len(o))
	for k, v := range o {
		out[k] = v
	}
	return out
}

func (o Options) IsEmpty() bool {
	return len(o) == 0
}

// Key is a canonical form used to detect duplicate option sets; values fold case.
func (o Options) Key() string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(strings.ToLower(o[k]))
	}
	return b.String()
}

// Contains reports whether every requested pair is present, comparing values case-insensitively.
func (o Options) Contains(requested Options) bool {
	for key, want := range requested {
		got, ok := o[key]
		if !ok {
			return false
		}
		if !strings.EqualFold(got, want) {
			return false
		}
	}
	return true
}

func (o Options) Equal(other Options) bool {
	return len(o) == len(other) && o.Contains(other)
}

type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativePrice
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}
