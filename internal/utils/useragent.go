package utils

import (
	"strings"

	ua "github.com/mssola/user_agent"
)

// DeviceInfo holds parsed information from a User-Agent string
type DeviceInfo struct {
	DeviceType string `json:"device_type"` // mobile, tablet, desktop
	OS         string `json:"os"`
	Browser    string `json:"browser"`
	Raw        string `json:"raw"`
}

// ParseUserAgent parses a User-Agent string and extracts device information
func ParseUserAgent(userAgent string) DeviceInfo {
	if userAgent == "" {
		return DeviceInfo{
			DeviceType: "unknown",
			OS:         "Unknown",
			Browser:    "Unknown",
			Raw:        userAgent,
		}
	}

	parser := ua.New(userAgent)
	browser, _ := parser.Browser()

	info := DeviceInfo{
		OS:      parser.OS(),
		Browser: browser,
		Raw:     userAgent,
	}
	if info.OS == "" {
		info.OS = "Unknown"
	}
	if info.Browser == "" {
		info.Browser = "Unknown"
	}

	info.DeviceType = deviceType(parser)
	return info
}

func deviceType(parser *ua.UserAgent) string {
	if parser.Mobile() {
		if strings.Contains(strings.ToLower(parser.UA()), "tablet") ||
			strings.Contains(parser.UA(), "iPad") {
			return "tablet"
		}
		return "mobile"
	}
	if parser.Bot() {
		return "bot"
	}
	return "desktop"
}
