package domain

// Idiom is the user interface family of the device.
type Idiom string

const (
	IdiomPhone  Idiom = "phone"
	IdiomTablet Idiom = "tablet"
)

// Orientation of the device.
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// DeviceInfo describes the device the application runs on.
type DeviceInfo struct {
	Name        string      `json:"name"`
	Idiom       Idiom       `json:"idiom"`
	Orientation Orientation `json:"orientation"`
}

// IsTablet reports whether the device uses the tablet layout.
func (d DeviceInfo) IsTablet() bool {
	return d.Idiom == IdiomTablet
}

// Launch arguments understood by the application under test.
const (
	LaunchSkipIntro          = "FIREFOX_SKIP_INTRO"
	LaunchSkipWhatsNew       = "FIREFOX_SKIP_WHATS_NEW"
	LaunchLoadDatabasePrefix = "FIREFOX_LOAD_DB_NAMED"
)

// DefaultLaunchArguments skips onboarding screens.
func DefaultLaunchArguments() []string {
	return []string{LaunchSkipIntro, LaunchSkipWhatsNew}
}
