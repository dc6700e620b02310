// Package inventory builds the set of locally installed packages.
package inventory

import (
	"sort"
	"strings"

	"github.com/obentoo/fedora-feedback/internal/common/logger"
	"github.com/obentoo/fedora-feedback/internal/nevra"
)

// Options controls how the package list is parsed
type Options struct {
	// StrictParsing aborts on the first malformed line. When false, bad lines
	// are logged and skipped.
	StrictParsing bool
}

// Inventory is the set of installed packages keyed by name-version-release.
type Inventory struct {
	nvrs   map[nevra.NVR]struct{}
	byName map[string][]nevra.NVR
}

// New returns an inventory holding the given triples
func New(nvrs ...nevra.NVR) *Inventory {
	inv := &Inventory{
		nvrs:   make(map[nevra.NVR]struct{}, len(nvrs)),
		byName: make(map[string][]nevra.NVR),
	}
	for _, nvr := range nvrs {
		inv.add(nvr)
	}
	return inv
}

// Build parses the raw output of the package lister, one file name per line.
func Build(raw string, opts Options) (*Inventory, error) {
	inv := New()

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return inv, nil
	}

	for _, line := range strings.Split(raw, "\n") {
		id, err := nevra.ParseFilename(strings.TrimSpace(line))
		if err != nil {
			if opts.StrictParsing {
				return nil, err
			}
			logger.Warn("skipping installed package: %v", err)
			continue
		}
		inv.add(id.NVR())
	}

	logger.Debug("found %d installed packages", inv.Len())
	return inv, nil
}

func (inv *Inventory) add(nvr nevra.NVR) {
	if _, exists := inv.nvrs[nvr]; exists {
		return
	}
	inv.nvrs[nvr] = struct{}{}
	inv.byName[nvr.Name] = append(inv.byName[nvr.Name], nvr)
}

// Contains reports whether exactly this name-version-release is installed
func (inv *Inventory) Contains(nvr nevra.NVR) bool {
	_, ok := inv.nvrs[nvr]
	return ok
}

// HasName reports whether any version of the package is installed
func (inv *Inventory) HasName(name string) bool {
	return len(inv.byName[name]) > 0
}

// Installed returns the installed triples of a package, oldest first
func (inv *Inventory) Installed(name string) []nevra.NVR {
	nvrs := append([]nevra.NVR(nil), inv.byName[name]...)
	sort.SliceStable(nvrs, func(i, j int) bool {
		return nevra.CompareVR(nvrs[i], nvrs[j]) < 0
	})
	return nvrs
}

// Len returns the number of distinct installed triples
func (inv *Inventory) Len() int {
	return len(inv.nvrs)
}
