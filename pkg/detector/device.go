// Package detector derives coarse client attributes from request headers
// for click event recording.
package detector

import "strings"

var deviceKeywords = []struct {
	device   string
	keywords []string
}{
	{"bot", []string{"bot", "crawler", "spider", "scraper", "curl", "wget"}},
	{"mobile", []string{"mobile", "android", "iphone", "ipod", "blackberry", "windows phone"}},
	{"tablet", []string{"tablet", "ipad"}},
}

// DeviceType classifies a User-Agent as bot, mobile, tablet, desktop or
// unknown. Bots are checked first so that crawler UAs claiming a desktop
// engine are not miscounted.
func DeviceType(userAgent string) string {
	ua := strings.ToLower(userAgent)

	for _, group := range deviceKeywords {
		for _, keyword := range group.keywords {
			if strings.Contains(ua, keyword) {
				return group.device
			}
		}
	}

	if strings.Contains(ua, "mozilla") || strings.Contains(ua, "windows") || strings.Contains(ua, "macintosh") {
		return "desktop"
	}

	return "unknown"
}

// ClientIP picks the client address, preferring proxy headers over the
// raw remote address.
func ClientIP(remoteAddr, xForwardedFor, xRealIP string) string {
	if xForwardedFor != "" {
		ips := strings.Split(xForwardedFor, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	if xRealIP != "" {
		return xRealIP
	}

	if idx := strings.LastIndex(remoteAddr, ":"); idx != -1 {
		return remoteAddr[:idx]
	}

	return remoteAddr
}
