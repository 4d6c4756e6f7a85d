package menu

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Prices is an ordered name -> price mapping. Its JSON form is an object whose
// key order is kept, so the menu renders in the order the server declared it.
type Prices []Entry

// Multipliers is an ordered size -> factor mapping, JSON-encoded as an object.
type Multipliers []Multiplier

type pair struct {
	key   string
	value float64
}

func (p Prices) MarshalJSON() ([]byte, error) {
	pairs := make([]pair, len(p))
	for i, e := range p {
		pairs[i] = pair{e.Name, e.Price}
	}
	return encodeObject(pairs)
}

// UnmarshalJSON decodes an object of numbers. null leaves Prices nil so callers
// can tell a missing mapping from an empty one.
func (p *Prices) UnmarshalJSON(data []byte) error {
	pairs, err := decodeObject(data)
	if err != nil {
		return fmt.Errorf("prices: %w", err)
	}
	if pairs == nil {
		*p = nil
		return nil
	}
	out := make(Prices, len(pairs))
	for i, kv := range pairs {
		out[i] = Entry{Name: kv.key, Price: kv.value}
	}
	*p = out
	return nil
}

func (m Multipliers) MarshalJSON() ([]byte, error) {
	pairs := make([]pair, len(m))
	for i, e := range m {
		pairs[i] = pair{e.Size, e.Factor}
	}
	return encodeObject(pairs)
}

func (m *Multipliers) UnmarshalJSON(data []byte) error {
	pairs, err := decodeObject(data)
	if err != nil {
		return fmt.Errorf("price_multiplier: %w", err)
	}
	if pairs == nil {
		*m = nil
		return nil
	}
	out := make(Multipliers, len(pairs))
	for i, kv := range pairs {
		out[i] = Multiplier{Size: kv.key, Factor: kv.value}
	}
	*m = out
	return nil
}

func encodeObject(pairs []pair) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kv := range pairs {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(kv.key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(kv.value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// decodeObject returns the members of a JSON object of numbers in document
// order. A repeated key keeps its first position and its last value.
func decodeObject(data []byte) ([]pair, error) {
	if string(bytes.TrimSpace(data)) == "null" {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("expected a JSON object")
	}

	pairs := make([]pair, 0)
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected key %v", tok)
		}

		var value *float64
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("value of %q: %w", key, err)
		}
		if value == nil {
			return nil, fmt.Errorf("value of %q is not a number", key)
		}

		if i, seen := index[key]; seen {
			pairs[i].value = *value
			continue
		}
		index[key] = len(pairs)
		pairs = append(pairs, pair{key, *value})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return pairs, nil
}
