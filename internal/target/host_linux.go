package target

import "golang.org/x/sys/unix"

// Host reports the platform and machine architecture of the current host.
// The architecture comes from uname so it matches what a configure script
// would see ("x86_64", "aarch64"), not the Go toolchain's naming.
func Host() (Platform, string) {
	var uname unix.Utsname
	if err := unix.Uname(&uname); err != nil {
		return Linux, goArch()
	}
	return Linux, unix.ByteSliceToString(uname.Machine[:])
}
