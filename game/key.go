package game

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// StateKeyVersion prefixes every textual state key.
const StateKeyVersion = "v1"

// Key encodes the state as "v1:f0.f1...f16".
func (s State) Key() string {
	var b strings.Builder
	b.WriteString(StateKeyVersion)
	b.WriteByte(':')
	for i, f := range s {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(strconv.Itoa(int(f)))
	}
	return b.String()
}

func (s State) String() string {
	return s.Key()
}

// ParseStateKey decodes a key produced by State.Key.
func ParseStateKey(key string) (State, error) {
	var s State
	version, body, ok := strings.Cut(key, ":")
	if !ok {
		return s, errors.Errorf("state key %q has no version", key)
	}
	if version != StateKeyVersion {
		return s, errors.Errorf("state key %q has unsupported version %q", key, version)
	}
	fields := strings.Split(body, ".")
	if len(fields) != NumFeatures {
		return s, errors.Errorf("state key %q has %d features, want %d", key, len(fields), NumFeatures)
	}
	for i, field := range fields {
		v, err := strconv.ParseUint(field, 10, 8)
		if err != nil {
			return s, errors.Wrapf(err, "state key %q feature %d", key, i)
		}
		s[i] = uint8(v)
	}
	if !s.valid() {
		return s, errors.Errorf("state key %q is out of range", key)
	}
	return s, nil
}
