package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Pair — одно поле записи (имя и строковое значение).
type Pair struct {
	Key   string
	Value string
}

// Record — упорядоченная запись результата запроса.
// Порядок полей задаётся формой запроса и должен сохраняться при сериализации.
type Record []Pair

// Get — значение поля по имени; ("", false), если поля нет.
func (r Record) Get(name string) (string, bool) {
	for _, p := range r {
		if p.Key == name {
			return p.Value, true
		}
	}
	return "", false
}

// Keys — имена полей в порядке хранения.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for _, p := range r {
		keys = append(keys, p.Key)
	}
	return keys
}

// MarshalJSON — объект с ключами в порядке хранения (encoding/json для map сортирует ключи).
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(p.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(p.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON — разбирает объект, сохраняя порядок ключей документа.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("record: expected object, got %v", tok)
	}

	out := Record{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("record: unexpected key token %v", keyTok)
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("record: field %q: %w", key, err)
		}
		out = append(out, Pair{Key: key, Value: value})
	}

	tok, err = dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '}' {
		return errors.New("record: unterminated object")
	}

	*r = out
	return nil
}

// CloneRecords — глубокая копия списка записей.
func CloneRecords(records []Record) []Record {
	if records == nil {
		return nil
	}
	out := make([]Record, len(records))
	for i, rec := range records {
		out[i] = append(Record(nil), rec...)
	}
	return out
}
