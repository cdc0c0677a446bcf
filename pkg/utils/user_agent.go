package utils

import (
	"fmt"
	"strings"

	"github.com/avct/uasurfer"
)

const unknown = "Unknown"

type UserAgentInfo struct {
	Device  string
	OS      string
	Browser string
	Locale  string
}

func ParseUserAgent(uaString string, acceptLanguage string) *UserAgentInfo {
	info := &UserAgentInfo{
		Device:  unknown,
		OS:      unknown,
		Browser: unknown,
		Locale:  parseLocale(acceptLanguage),
	}
	if strings.TrimSpace(uaString) == "" {
		return info
	}

	ua := uasurfer.Parse(uaString)
	switch ua.DeviceType {
	case uasurfer.DeviceComputer:
		info.Device = "Computer"
	case uasurfer.DeviceTablet:
		info.Device = "Tablet"
	case uasurfer.DevicePhone:
		info.Device = "Phone"
	case uasurfer.DeviceConsole:
		info.Device = "Console"
	case uasurfer.DeviceWearable:
		info.Device = "Wearable"
	case uasurfer.DeviceTV:
		info.Device = "TV"
	}

	if ua.OS.Name != uasurfer.OSUnknown {
		info.OS = fmt.Sprintf("%s %d.%d", ua.OS.Name.String(), ua.OS.Version.Major, ua.OS.Version.Minor)
	}
	if ua.Browser.Name != uasurfer.BrowserUnknown {
		info.Browser = fmt.Sprintf("%s %d.%d", ua.Browser.Name.String(), ua.Browser.Version.Major, ua.Browser.Version.Minor)
	}
	return info
}

func parseLocale(acceptLanguage string) string {
	if i := strings.IndexByte(acceptLanguage, ','); i >= 0 {
		acceptLanguage = acceptLanguage[:i]
	}
	if i := strings.IndexByte(acceptLanguage, ';'); i >= 0 {
		acceptLanguage = acceptLanguage[:i]
	}
	return strings.TrimSpace(acceptLanguage)
}
