package nevra

import (
	rpmutils "github.com/sassoftware/go-rpmutils"
)

// CompareVR compares version and release of two triples using RPM ordering
// rules. Names are not considered.
// Returns: -1 if a < b, 0 if equal, 1 if a > b
func CompareVR(a, b NVR) int {
	if cmp := rpmutils.Vercmp(a.Version, b.Version); cmp != 0 {
		return cmp
	}
	return rpmutils.Vercmp(a.Release, b.Release)
}
