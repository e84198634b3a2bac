package config

import (
	"errors"
	"fmt"
	"strings"
)

// iniCodec decodes the ConfigParser files g-octave has always installed as
// /etc/g-octave.cfg: [section] headers, "key = value" or "key: value"
// lines, # and ; comments, and indented continuation lines. Keys outside
// any section land at the top level.
type iniCodec struct{}

func (iniCodec) Decode(b []byte, v map[string]any) error {
	section := v
	lastKey := ""
	for n, line := range strings.Split(string(b), "\n") {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "", trimmed[0] == '#', trimmed[0] == ';':
			continue
		case line[0] == ' ' || line[0] == '\t':
			prev, ok := section[lastKey].(string)
			if !ok {
				return fmt.Errorf("line %d: continuation without a key", n+1)
			}
			section[lastKey] = strings.TrimSpace(prev + "\n" + trimmed)
		case trimmed[0] == '[':
			if !strings.HasSuffix(trimmed, "]") {
				return fmt.Errorf("line %d: unterminated section header %q", n+1, trimmed)
			}
			name := strings.ToLower(strings.TrimSpace(trimmed[1 : len(trimmed)-1]))
			if name == "" {
				return fmt.Errorf("line %d: empty section name", n+1)
			}
			m, ok := v[name].(map[string]any)
			if !ok {
				m = make(map[string]any)
				v[name] = m
			}
			section, lastKey = m, ""
		default:
			i := strings.IndexAny(trimmed, "=:")
			if i <= 0 {
				return fmt.Errorf("line %d: expected key = value, got %q", n+1, trimmed)
			}
			lastKey = strings.ToLower(strings.TrimSpace(trimmed[:i]))
			section[lastKey] = strings.TrimSpace(trimmed[i+1:])
		}
	}
	return nil
}

func (iniCodec) Encode(map[string]any) ([]byte, error) {
	return nil, errors.New("writing ini config is not supported")
}
