package target

import "runtime"

// goArch maps the Go architecture name to the configure-script spelling.
func goArch() string {
	switch runtime.GOARCH {
	case "amd64":
		return "x86_64"
	case "arm64":
		return "arm64"
	case "386":
		return "i686"
	default:
		return runtime.GOARCH
	}
}
