// Package unreal knows the Unreal Engine names of platforms and
// configurations, and how to find an engine checkout.
package unreal

import (
	"errors"
	"fmt"
	"runtime"
	"slices"
	"strings"

	fp "github.com/repeale/fp-go"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
)

var ErrUnsupported = errors.New("unsupported")

var platformAliases = map[string]string{
	"ps4":       "ps4",
	"orbis":     "ps4",
	"xboxone":   "xboxone",
	"dingo":     "xboxone",
	"win32":     "win32",
	"pcconsole": "win32",
	"win64":     "win64",
	"pc":        "win64",
	"windows":   "win64",
	"xbox360":   "xbox360",
	"x360":      "xbox360",
	"ps3":       "ps3",
	"linux":     "linux",
	"android":   "android",
	"mac":       "mac",
	"macos":     "mac",
	"ios":       "ios",
}

var configurations = map[string]string{
	"debug":    "debug",
	"devel":    "devel",
	"release":  "release",
	"test":     "test",
	"shipping": "shipping",
}

var buildPlatforms = map[string]string{
	"ps4":     "PS4",
	"xboxone": "XboxOne",
	"win64":   "Win64",
	"win32":   "Win32",
	"linux":   "Linux",
	"android": "Android",
	"mac":     "Mac",
	"ios":     "IOS",
}

var buildConfigurations = map[string]string{
	"debug":    "Debug",
	"devel":    "Development",
	"test":     "Test",
	"shipping": "Shipping",
}

// IniPlatformName of PlatformProperties.
var configurationPlatforms = map[string]string{
	"Android": "Android",
	"IOS":     "IOS",
	"Linux":   "Linux",
	"Mac":     "Mac",
	"PS4":     "PS4",
	"Win32":   "Windows",
	"Win64":   "Windows",
	"XboxOne": "XboxOne",
}

// GetCookPlatform of the automation tool.
var cookPlatforms = map[string]string{
	"Android": "Android",
	"IOS":     "IOS",
	"Linux":   "LinuxNoEditor",
	"Mac":     "MacNoEditor",
	"PS4":     "PS4",
	"Win32":   "WindowsNoEditor",
	"Win64":   "WindowsNoEditor",
	"XboxOne": "XboxOne",
}

// SanitizePlatform maps a platform alias to its standard name. Unknown
// names are returned unchanged.
func SanitizePlatform(name string) string {
	if std, ok := platformAliases[strings.ToLower(name)]; ok {
		return std
	}
	return name
}

// SanitizeConfiguration returns the standard configuration name, or an
// empty string for unknown ones.
func SanitizeConfiguration(name string) string {
	return configurations[strings.ToLower(name)]
}

// PlatformAliases returns every accepted platform alias, sorted.
func PlatformAliases() []string {
	aliases := maps.Keys(platformAliases)
	slices.Sort(aliases)
	return aliases
}

// Platforms is a sanitized "+" separated platform list.
type Platforms struct {
	Names []string

	Win32, Win64, PS3, PS4, Xbox360, XboxOne, Linux, Android, Mac, IOS bool
}

// ParsePlatforms sanitizes every platform of a "pc+orbis" style list.
func ParsePlatforms(list string) Platforms {
	names := fp.Map(SanitizePlatform)(strings.Split(list, "+"))
	p := Platforms{Names: names}
	for _, name := range names {
		switch name {
		case "win32":
			p.Win32 = true
		case "win64":
			p.Win64 = true
		case "ps3":
			p.PS3 = true
		case "ps4":
			p.PS4 = true
		case "xbox360":
			p.Xbox360 = true
		case "xboxone":
			p.XboxOne = true
		case "linux":
			p.Linux = true
		case "android":
			p.Android = true
		case "mac":
			p.Mac = true
		case "ios":
			p.IOS = true
		}
	}
	return p
}

func (p Platforms) String() string { return strings.Join(p.Names, "+") }

func (p Platforms) Microsoft() bool { return p.Win32 || p.Win64 || p.Xbox360 || p.XboxOne }
func (p Platforms) Sony() bool      { return p.PS3 || p.PS4 }
func (p Platforms) Mobile() bool    { return p.IOS || p.Android }

// ParseConfigurations sanitizes a "+" separated configuration list, an
// empty list means devel.
func ParseConfigurations(list string) string {
	if list == "" {
		return "devel"
	}
	return strings.Join(fp.Map(SanitizeConfiguration)(strings.Split(list, "+")), "+")
}

func lookup(table map[string]string, kind, name string) (string, error) {
	if v, ok := table[name]; ok {
		return v, nil
	}
	logrus.Warnf("Unsupported UE4 %s “%s”", kind, name)
	return "", fmt.Errorf("%w %s %q", ErrUnsupported, kind, name)
}

// BuildPlatform returns the Unreal name of a standard platform.
func BuildPlatform(platform string) (string, error) {
	return lookup(buildPlatforms, "build platform", platform)
}

// BuildConfiguration returns the Unreal name of a standard configuration.
func BuildConfiguration(config string) (string, error) {
	return lookup(buildConfigurations, "build config", config)
}

// BuildPlatforms maps a "+" separated list, failing on the first unknown
// platform.
func BuildPlatforms(list string) (string, error) {
	return mapList(list, BuildPlatform)
}

// BuildConfigurations maps a "+" separated list, failing on the first
// unknown configuration.
func BuildConfigurations(list string) (string, error) {
	return mapList(list, BuildConfiguration)
}

func mapList(list string, f func(string) (string, error)) (string, error) {
	var out []string
	for _, item := range strings.Split(list, "+") {
		v, err := f(item)
		if err != nil {
			return "", err
		}
		out = append(out, v)
	}
	return strings.Join(out, "+"), nil
}

// ConfigurationPlatform returns the platform name used by config files.
func ConfigurationPlatform(ue4Platform string) (string, error) {
	return lookup(configurationPlatforms, "configuration platform", ue4Platform)
}

// CookPlatform returns the platform name used when cooking assets.
func CookPlatform(ue4Platform string) (string, error) {
	return lookup(cookPlatforms, "cook platform", ue4Platform)
}

// DefaultTarget is "editor" on desktop platforms and "game" elsewhere.
func DefaultTarget(platform string) string {
	switch platform {
	case "win64", "mac", "linux":
		return "editor"
	}
	return "game"
}

// HostPlatform returns the Unreal platform of the machine running nimp.
func HostPlatform() (string, error) {
	info, err := host.Info()
	if err != nil {
		logrus.Debugf("host info: %s", err)
		return hostPlatform(runtime.GOOS, runtime.GOARCH)
	}
	return hostPlatform(info.OS, info.KernelArch)
}

// hostPlatform maps an OS and a kernel architecture, as reported by
// gopsutil or the Go runtime, to an Unreal platform.
func hostPlatform(goos, arch string) (string, error) {
	switch goos {
	case "windows":
		switch arch {
		case "386", "i386", "i686", "x86":
			return "Win32", nil
		}
		return "Win64", nil
	case "linux":
		return "Linux", nil
	case "darwin":
		return "Mac", nil
	}
	return "", fmt.Errorf("%w platform: %s", ErrUnsupported, goos)
}

// HostDescription describes the operating system of the machine, such as
// "ubuntu 22.04 (x86_64)".
func HostDescription() string {
	info, err := host.Info()
	if err != nil {
		logrus.Debugf("host info: %s", err)
		return runtime.GOOS + " (" + runtime.GOARCH + ")"
	}
	return describeHost(info)
}

func describeHost(info *host.InfoStat) string {
	name := strings.TrimSpace(info.Platform + " " + info.PlatformVersion)
	if name == "" {
		name = info.OS
	}
	if info.KernelArch == "" {
		return name
	}
	return name + " (" + info.KernelArch + ")"
}
