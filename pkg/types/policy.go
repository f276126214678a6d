package types

// PolicyName names one of the supported extraction policies.
type PolicyName string

const (
	// PolicyFlat installs the primary executable and helper library flat
	// into the sandbox root, matching them by basename at any depth.
	PolicyFlat PolicyName = "flat"
	// PolicyTree installs the bin/, lib/ and fs/ trees of the archive into
	// bin/, lib/ and rootfs/ under the sandbox root.
	PolicyTree PolicyName = "tree"
)

// Route is the destination of an archive entry that matched a policy.
type Route struct {
	// The destination relative to the sandbox root, slash separated
	Path string
	// Whether the owner-executable bit is set once the write completes
	Executable bool
}
