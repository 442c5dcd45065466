package utils

import (
	ua "github.com/mssola/user_agent"
)

// DeviceInfo holds the parsed client details attached to request logs.
type DeviceInfo struct {
	Browser  string `json:"browser"`
	OS       string `json:"os"`
	Platform string `json:"platform"`
	Mobile   bool   `json:"mobile"`
	Bot      bool   `json:"bot"`
}

// ParseUserAgent extracts device information from a User-Agent header value.
func ParseUserAgent(userAgent string) DeviceInfo {
	if userAgent == "" {
		return DeviceInfo{Browser: "unknown", OS: "unknown", Platform: "unknown"}
	}

	parsed := ua.New(userAgent)
	browser, version := parsed.Browser()
	if version != "" {
		browser = browser + "/" + version
	}

	info := DeviceInfo{
		Browser:  browser,
		OS:       parsed.OS(),
		Platform: parsed.Platform(),
		Mobile:   parsed.Mobile(),
		Bot:      parsed.Bot(),
	}
	if info.Browser == "" {
		info.Browser = "unknown"
	}
	if info.OS == "" {
		info.OS = "unknown"
	}
	if info.Platform == "" {
		info.Platform = "unknown"
	}
	return info
}
