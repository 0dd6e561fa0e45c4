// Package i18n holds the UI translations and language negotiation.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed locales/*.json
var localeFS embed.FS

// Supported languages, in matcher preference order.
var supported = []language.Tag{language.Turkish, language.English}

var matcher = language.NewMatcher(supported)

// Catalog maps language code to translation key to text.
type Catalog struct {
	texts    map[string]map[string]string
	fallback string
}

// Load reads the embedded locale files. fallback is used for keys a
// language lacks and for unsupported languages.
func Load(fallback string) (*Catalog, error) {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}

	c := &Catalog{texts: make(map[string]map[string]string), fallback: fallback}
	for _, e := range entries {
		data, err := localeFS.ReadFile(path.Join("locales", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Name(), err)
		}
		var texts map[string]string
		if err := json.Unmarshal(data, &texts); err != nil {
			return nil, fmt.Errorf("parse %s: %w", e.Name(), err)
		}
		c.texts[strings.TrimSuffix(e.Name(), ".json")] = texts
	}

	if _, ok := c.texts[fallback]; !ok {
		return nil, fmt.Errorf("fallback language %q has no locale file", fallback)
	}
	return c, nil
}

// Languages returns the codes with a locale file, Turkish first.
func (c *Catalog) Languages() []string {
	out := make([]string, 0, len(supported))
	for _, tag := range supported {
		base, _ := tag.Base()
		if _, ok := c.texts[base.String()]; ok {
			out = append(out, base.String())
		}
	}
	return out
}

// Normalize maps a stored or submitted language value ("en", "en-GB",
// "TR") to a supported two-letter code. ok is false when the value does
// not name a supported language.
func (c *Catalog) Normalize(raw string) (code string, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return c.fallback, false
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return c.fallback, false
	}
	_, idx, conf := matcher.Match(tag)
	if conf < language.High {
		return c.fallback, false
	}
	base, _ := supported[idx].Base()
	if _, exists := c.texts[base.String()]; !exists {
		return c.fallback, false
	}
	return base.String(), true
}

// T returns the text for key in lang, falling back to the fallback
// language and finally to the key itself.
func (c *Catalog) T(lang, key string) string {
	if text, ok := c.texts[lang][key]; ok {
		return text
	}
	if text, ok := c.texts[c.fallback][key]; ok {
		return text
	}
	return key
}

// Tf is T followed by fmt-style substitution.
func (c *Catalog) Tf(lang, key string, args ...any) string {
	return fmt.Sprintf(c.T(lang, key), args...)
}

// FormatNumber groups digits the way lang writes them (4,500,000 / 4.500.000).
func FormatNumber(lang string, n int64) string {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.Turkish
	}
	return message.NewPrinter(tag).Sprintf("%d", n)
}
