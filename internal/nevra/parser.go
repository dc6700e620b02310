// Package nevra parses RPM package identifiers.
//
// Installed packages are reported by dnf as file names
// (name-[epoch:]version-release.arch.rpm) while Bodhi refers to builds by
// their name-version-release. Both forms are split from the right because
// package names may themselves contain hyphens.
package nevra

import (
	"errors"
	"fmt"
	"strings"
)

// ErrParse is matched by every error returned from the parse functions.
var ErrParse = errors.New("malformed package identifier")

// DefaultEpoch is used when the input carries no explicit epoch.
const DefaultEpoch = "0"

// ParseError describes an input that could not be split into its parts.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v %q: %s", ErrParse, e.Input, e.Reason)
}

// Unwrap allows errors.Is(err, ErrParse)
func (e *ParseError) Unwrap() error {
	return ErrParse
}

// NEVRA is a fully qualified package identifier.
type NEVRA struct {
	Name    string
	Epoch   string
	Version string
	Release string
	Arch    string
}

// NVR is the name-version-release triple used for inventory matching.
// Builds of the same package for different architectures or epochs compare
// equal.
type NVR struct {
	Name    string
	Version string
	Release string
}

// NVR reduces the identifier to its matching triple.
func (n NEVRA) NVR() NVR {
	return NVR{Name: n.Name, Version: n.Version, Release: n.Release}
}

// String returns name-[epoch:]version-release.arch; a default epoch is omitted.
func (n NEVRA) String() string {
	ev := n.Version
	if n.Epoch != "" && n.Epoch != DefaultEpoch {
		ev = n.Epoch + ":" + n.Version
	}
	return n.Name + "-" + ev + "-" + n.Release + "." + n.Arch
}

// String returns name-version-release.
func (n NVR) String() string {
	return n.Name + "-" + n.Version + "-" + n.Release
}

// VR returns version-release, the form shown to users.
func (n NVR) VR() string {
	return n.Version + "-" + n.Release
}

// ParseFilename parses a package file name such as
// "foo-bar-1:2.3-4.fc40.x86_64.rpm". The extension is discarded.
func ParseFilename(filename string) (NEVRA, error) {
	parts, ok := rsplit(filename, ".", 2)
	if !ok {
		return NEVRA{}, &ParseError{Input: filename, Reason: "missing file extension"}
	}
	n, err := ParseNEVRA(parts[0])
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Input = filename
		}
		return NEVRA{}, err
	}
	return n, nil
}

// ParseNEVRA parses name-[epoch:]version-release.arch.
func ParseNEVRA(s string) (NEVRA, error) {
	parts, ok := rsplit(s, ".", 2)
	if !ok {
		return NEVRA{}, &ParseError{Input: s, Reason: "missing architecture"}
	}
	nevr, arch := parts[0], parts[1]
	if arch == "" {
		return NEVRA{}, &ParseError{Input: s, Reason: "empty architecture"}
	}

	nvr, err := splitNVR(s, nevr)
	if err != nil {
		return NEVRA{}, err
	}

	epoch, version := DefaultEpoch, nvr[1]
	if e, v, found := strings.Cut(nvr[1], ":"); found {
		epoch, version = e, v
		if epoch == "" || version == "" {
			return NEVRA{}, &ParseError{Input: s, Reason: "malformed epoch:version"}
		}
	}

	return NEVRA{
		Name:    nvr[0],
		Epoch:   epoch,
		Version: version,
		Release: nvr[2],
		Arch:    arch,
	}, nil
}

// ParseNVR parses a bare name-version-release as used by Bodhi builds.
func ParseNVR(s string) (NVR, error) {
	parts, err := splitNVR(s, s)
	if err != nil {
		return NVR{}, err
	}
	return NVR{Name: parts[0], Version: parts[1], Release: parts[2]}, nil
}

// splitNVR splits s into name, version (possibly with epoch) and release.
// input is what gets reported on failure.
func splitNVR(input, s string) ([3]string, error) {
	parts, ok := rsplit(s, "-", 3)
	if !ok {
		return [3]string{}, &ParseError{Input: input, Reason: "expected name-version-release"}
	}
	for i, label := range [3]string{"name", "version", "release"} {
		if parts[i] == "" {
			return [3]string{}, &ParseError{Input: input, Reason: "empty " + label}
		}
	}
	return [3]string{parts[0], parts[1], parts[2]}, nil
}

// rsplit splits s on sep from the right into exactly n parts, in input
// order. Everything left of the last n-1 separators ends up in parts[0].
// It reports false when s holds fewer than n-1 separators.
func rsplit(s, sep string, n int) ([]string, bool) {
	parts := make([]string, n)
	rest := s
	for i := n - 1; i > 0; i-- {
		idx := strings.LastIndex(rest, sep)
		if idx < 0 {
			return nil, false
		}
		parts[i] = rest[idx+len(sep):]
		rest = rest[:idx]
	}
	parts[0] = rest
	return parts, true
}
