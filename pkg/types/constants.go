package types

const (
	// PrimaryExecutable is the name of the UserSU daemon binary.
	PrimaryExecutable = "usud"
	// HelperLibrary is the name of the preloaded fakeroot library.
	HelperLibrary = "libfakeroot.so"
	// VersionArg is the argument that makes the primary executable print its version.
	VersionArg = "--version"
)
