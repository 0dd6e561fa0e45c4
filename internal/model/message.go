package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// FallbackLanguage is used when a localized message lacks the requested language.
const FallbackLanguage = "tr"

// Message is a backend message that is either plain text or a
// language-to-text mapping. The zero value is an empty plain message.
type Message struct {
	plain     string
	localized map[string]string
}

// Plain builds a plain-text message.
func Plain(text string) Message {
	return Message{plain: text}
}

// Localized builds a per-language message.
func Localized(texts map[string]string) Message {
	copied := make(map[string]string, len(texts))
	for k, v := range texts {
		copied[k] = v
	}
	return Message{localized: copied}
}

// IsLocalized reports whether the message carries per-language texts.
func (m Message) IsLocalized() bool {
	return m.localized != nil
}

// IsZero reports whether the message has no text at all.
func (m Message) IsZero() bool {
	return m.plain == "" && len(m.localized) == 0
}

// Resolve returns the text for lang. Localized messages fall back to
// FallbackLanguage, then "en", then the first language in sorted order.
func (m Message) Resolve(lang string) string {
	if m.localized == nil {
		return m.plain
	}
	if text, ok := m.localized[lang]; ok && text != "" {
		return text
	}
	for _, fallback := range []string{FallbackLanguage, "en"} {
		if text, ok := m.localized[fallback]; ok && text != "" {
			return text
		}
	}

	keys := make([]string, 0, len(m.localized))
	for k := range m.localized {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if m.localized[k] != "" {
			return m.localized[k]
		}
	}
	return ""
}

// UnmarshalJSON accepts a JSON string, an object of strings, or null.
func (m *Message) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*m = Message{}
		return nil
	case len(data) > 0 && data[0] == '"':
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return fmt.Errorf("message: %w", err)
		}
		*m = Plain(text)
		return nil
	case len(data) > 0 && data[0] == '{':
		var texts map[string]string
		if err := json.Unmarshal(data, &texts); err != nil {
			return fmt.Errorf("message: %w", err)
		}
		*m = Message{localized: texts}
		return nil
	default:
		return fmt.Errorf("message: unsupported JSON %s", data)
	}
}

// MarshalJSON writes the message back in its original shape.
func (m Message) MarshalJSON() ([]byte, error) {
	if m.localized != nil {
		return json.Marshal(m.localized)
	}
	return json.Marshal(m.plain)
}
