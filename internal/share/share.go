// Package share builds social-network share links for short URLs.
package share

import (
	"errors"
	"net"
	"net/url"
	"sort"
	"strings"
)

// ErrUnknownPlatform is returned for an unsupported platform tag.
var ErrUnknownPlatform = errors.New("unknown share platform")

// Platform tags.
const (
	Twitter  = "twitter"
	Facebook = "facebook"
	LinkedIn = "linkedin"
	WhatsApp = "whatsapp"
	Telegram = "telegram"
	Reddit   = "reddit"
	Email    = "email"
)

type platformSpec struct {
	build func(target, text string) string
	// publicOnly platforms fetch the target themselves and refuse
	// loopback hosts.
	publicOnly bool
}

var platforms = map[string]platformSpec{
	Twitter: {build: func(target, text string) string {
		return "https://twitter.com/intent/tweet?" + url.Values{"url": {target}, "text": {text}}.Encode()
	}},
	Facebook: {publicOnly: true, build: func(target, _ string) string {
		return "https://www.facebook.com/sharer/sharer.php?" + url.Values{"u": {target}}.Encode()
	}},
	LinkedIn: {publicOnly: true, build: func(target, _ string) string {
		return "https://www.linkedin.com/sharing/share-offsite/?" + url.Values{"url": {target}}.Encode()
	}},
	WhatsApp: {build: func(target, text string) string {
		return "https://wa.me/?" + url.Values{"text": {strings.TrimSpace(text + " " + target)}}.Encode()
	}},
	Telegram: {build: func(target, text string) string {
		return "https://t.me/share/url?" + url.Values{"url": {target}, "text": {text}}.Encode()
	}},
	Reddit: {build: func(target, text string) string {
		return "https://www.reddit.com/submit?" + url.Values{"url": {target}, "title": {text}}.Encode()
	}},
	Email: {build: func(target, text string) string {
		q := url.Values{"subject": {text}, "body": {target}}.Encode()
		// mailto readers expect %20, not +.
		return "mailto:?" + strings.ReplaceAll(q, "+", "%20")
	}},
}

// Platforms returns the supported platform tags in sorted order.
func Platforms() []string {
	out := make([]string, 0, len(platforms))
	for p := range platforms {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Link returns the external share URL for platform.
func Link(platform, target, text string) (string, error) {
	tpl, ok := platforms[strings.ToLower(platform)]
	if !ok {
		return "", ErrUnknownPlatform
	}
	return tpl.build(target, text), nil
}

// RequiresPublicURL reports whether platform refuses non-public targets.
func RequiresPublicURL(platform string) bool {
	return platforms[strings.ToLower(platform)].publicOnly
}

// NeedsConfirmation reports whether sharing target on platform should ask
// the user first: the platform refuses loopback targets and this one is.
// The platform may still refuse the link after confirmation.
func NeedsConfirmation(platform, target string) bool {
	return RequiresPublicURL(platform) && IsLoopback(target)
}

// IsLoopback reports whether target points at localhost or a loopback IP.
func IsLoopback(target string) bool {
	u, err := url.Parse(target)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return false
	}
	if host == "localhost" || strings.HasSuffix(host, ".localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
