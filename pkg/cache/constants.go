package cache

const (
	// FormatVersion is the on-disk cache format version written to new cache
	// roots.
	FormatVersion = "1.0.0"

	// formatConstraint accepts trees written by any compatible version.
	formatConstraint = ">= 1.0.0, < 2.0.0"

	// versionFileName holds the format version in the cache root.
	versionFileName = "version"

	// cacheDirTagContent follows the Cache Directory Tagging Specification;
	// the signature line is what backup tools match on.
	cacheDirTagContent = "Signature: 8a477f597d28d172789f06886806bc55\n" +
		"# This file is a cache directory tag created by buildcache.\n" +
		"# For information about cache directory tags, see:\n" +
		"#\thttps://bford.info/cachedir/\n"
)
