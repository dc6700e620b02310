// Package classify reconciles Bodhi updates against the local inventory.
//
// Updates pass two filters first: updates submitted by the user and updates
// the user already commented on are dropped. What remains is split into
//
//   - feedback-pending: package names of updates with at least one build
//     that is installed exactly, and
//   - interesting-pending: updates for packages that are installed in some
//     other version and that the user watches.
package classify

import (
	"sort"

	"github.com/obentoo/fedora-feedback/internal/common/bodhi"
	"github.com/obentoo/fedora-feedback/internal/common/logger"
	"github.com/obentoo/fedora-feedback/internal/inventory"
	"github.com/obentoo/fedora-feedback/internal/nevra"
)

// Options carries the parts of the run configuration the classifier needs
type Options struct {
	Username  string
	Interests []string
	// StrictParsing aborts on the first malformed build NVR
	StrictParsing bool
}

// Result is the outcome of a classification
type Result struct {
	// FeedbackPending holds package names, sorted and unique
	FeedbackPending []string
	// InterestingPending holds updates, unique by alias and sorted by alias
	InterestingPending []bodhi.Update
}

// Classify computes feedback-pending and interesting-pending.
func Classify(inv *inventory.Inventory, updates []bodhi.Update, opts Options) (*Result, error) {
	relevant := FilterRelevant(updates, opts.Username)
	logger.Debug("%d of %d updates are relevant for %s", len(relevant), len(updates), opts.Username)

	parsed := make([][]nevra.NVR, len(relevant))
	for i, u := range relevant {
		nvrs, err := parseBuilds(u, opts.StrictParsing)
		if err != nil {
			return nil, err
		}
		parsed[i] = nvrs
	}

	return &Result{
		FeedbackPending:    feedbackPending(inv, parsed),
		InterestingPending: interestingPending(inv, relevant, parsed, opts.Interests),
	}, nil
}

// FilterRelevant drops updates submitted by username and updates username
// has commented on. Updates without comments are kept.
func FilterRelevant(updates []bodhi.Update, username string) []bodhi.Update {
	relevant := make([]bodhi.Update, 0, len(updates))
	for _, u := range updates {
		if u.User.Name == username {
			continue
		}
		if commentedBy(u, username) {
			continue
		}
		relevant = append(relevant, u)
	}
	return relevant
}

func commentedBy(u bodhi.Update, username string) bool {
	for _, c := range u.Comments {
		if c.User.Name == username {
			return true
		}
	}
	return false
}

// parseBuilds parses the NVR of every build of u
func parseBuilds(u bodhi.Update, strict bool) ([]nevra.NVR, error) {
	nvrs := make([]nevra.NVR, 0, len(u.Builds))
	for _, b := range u.Builds {
		nvr, err := nevra.ParseNVR(b.NVR)
		if err != nil {
			if strict {
				return nil, err
			}
			logger.Warn("skipping build of %s: %v", u.Alias, err)
			continue
		}
		nvrs = append(nvrs, nvr)
	}
	return nvrs, nil
}

// anyInstalled reports whether one of nvrs is installed exactly
func anyInstalled(inv *inventory.Inventory, nvrs []nevra.NVR) bool {
	for _, nvr := range nvrs {
		if inv.Contains(nvr) {
			return true
		}
	}
	return false
}

// feedbackPending collects every build name of updates that have at least
// one exactly-installed build.
func feedbackPending(inv *inventory.Inventory, parsed [][]nevra.NVR) []string {
	var names []string
	for _, nvrs := range parsed {
		if !anyInstalled(inv, nvrs) {
			continue
		}
		for _, nvr := range nvrs {
			names = append(names, nvr.Name)
		}
	}
	return sortUnique(names)
}

// interestingPending selects updates that are not installed yet, where some
// build's package is installed by name and some build's package is watched.
// Both conditions are evaluated over the whole update, so they may be met
// by different builds.
func interestingPending(inv *inventory.Inventory, relevant []bodhi.Update, parsed [][]nevra.NVR, interests []string) []bodhi.Update {
	watched := make(map[string]struct{}, len(interests))
	for _, name := range interests {
		watched[name] = struct{}{}
	}

	byAlias := make(map[string]bodhi.Update)
	for i, nvrs := range parsed {
		if anyInstalled(inv, nvrs) {
			continue
		}

		var isInstalled, isInteresting bool
		for _, nvr := range nvrs {
			if inv.HasName(nvr.Name) {
				isInstalled = true
			}
			if _, ok := watched[nvr.Name]; ok {
				isInteresting = true
			}
		}

		if isInstalled && isInteresting {
			u := relevant[i]
			if _, seen := byAlias[u.Alias]; !seen {
				byAlias[u.Alias] = u
			}
		}
	}

	result := make([]bodhi.Update, 0, len(byAlias))
	for _, u := range byAlias {
		result = append(result, u)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Alias < result[j].Alias
	})
	return result
}

// sortUnique sorts names and removes duplicates
func sortUnique(names []string) []string {
	sort.Strings(names)
	out := make([]string, 0, len(names))
	for i, n := range names {
		if i > 0 && n == names[i-1] {
			continue
		}
		out = append(out, n)
	}
	return out
}
