package translate

import "golang.org/x/mod/semver"

const (
	// Version identifies the translator release recorded in every proof
	// and document it emits.
	Version = "2.0"

	// SurfaceVersion is the Lucid grammar generation a document was
	// translated from.
	SurfaceVersion = "1.0"

	// DeepVersion is the Noema document generation this translator emits.
	DeepVersion = "2.0"

	// MinimumSurfaceVersion is the oldest surface generation the deep
	// layer still accepts.
	MinimumSurfaceVersion = "1.0"
)

// compatibleDeepMajor is the deep-layer major series this translator can
// consume. Documents from another major series need a newer translator.
const compatibleDeepMajor = "v2"

// CompatibleWith reports whether a surface/deep version pair falls inside
// the compatibility matrix: the deep version must be in the supported major
// series and the surface version must not predate the minimum.
func CompatibleWith(surface, deep string) bool {
	surfaceV := canonicalVersion(surface)
	deepV := canonicalVersion(deep)
	if !semver.IsValid(surfaceV) || !semver.IsValid(deepV) {
		return false
	}
	if semver.Major(deepV) != compatibleDeepMajor {
		return false
	}
	return semver.Compare(surfaceV, canonicalVersion(MinimumSurfaceVersion)) >= 0
}

// canonicalVersion normalizes the bare "2.0" style used in documents to the
// "v2.0" form golang.org/x/mod/semver expects.
func canonicalVersion(version string) string {
	if version == "" {
		return ""
	}
	if version[0] == 'v' {
		return version
	}
	return "v" + version
}
