// Package notify builds and delivers desktop notifications about pending updates.
package notify

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/obentoo/fedora-feedback/internal/common/bodhi"
)

const (
	// UpdatesURL is the Bodhi web listing that deep links point at
	UpdatesURL = "https://bodhi.fedoraproject.org/updates/"
	// DefaultIcon is the freedesktop icon name shown with every notification
	DefaultIcon = "dialog-information"

	FeedbackSummary    = "Installed updates are ready for feedback"
	InterestingSummary = "Updates for interesting packages are available"
)

// Payload is a fully formatted notification
type Payload struct {
	Summary string
	Body    string
	Icon    string
}

// FeedbackURL links to the testing updates of release for the given packages
func FeedbackURL(release string, names []string) string {
	return updatesURL(release, names)
}

// InterestsURL links to the testing updates of release for the watched
// packages. Interests are sorted and deduplicated so the link is stable.
func InterestsURL(release string, interests []string) string {
	return updatesURL(release, sortedUnique(interests))
}

// updatesURL keeps the query order and the literal comma separator Bodhi expects.
// Package names go in verbatim, so the "+" of libstdc++ is read by Bodhi as
// a space.
func updatesURL(release string, names []string) string {
	return fmt.Sprintf("%s?release=%s&status=testing&packages=%s",
		UpdatesURL, url.QueryEscape(release), strings.Join(names, ","))
}

// FeedbackPayload builds the notification for installed updates awaiting feedback
func FeedbackPayload(release string, names []string) Payload {
	return Payload{
		Summary: FeedbackSummary,
		Body:    FeedbackURL(release, names),
		Icon:    DefaultIcon,
	}
}

// InterestingPayload builds the notification for watched packages with
// pending updates
func InterestingPayload(release string, interests []string, updates []bodhi.Update) Payload {
	return Payload{
		Summary: fmt.Sprintf("%s (%d)", InterestingSummary, len(updates)),
		Body:    InterestsURL(release, interests),
		Icon:    DefaultIcon,
	}
}

// SummarizeFeedback returns the console line for feedback-pending packages
func SummarizeFeedback(names []string) string {
	switch len(names) {
	case 0:
		return "No installed updates are waiting for feedback"
	case 1:
		return "1 installed package is waiting for feedback: " + names[0]
	default:
		return fmt.Sprintf("%d installed packages are waiting for feedback: %s", len(names), strings.Join(names, ", "))
	}
}

// SummarizeInteresting returns the console line for interesting updates,
// given their aliases
func SummarizeInteresting(aliases []string) string {
	if len(aliases) == 0 {
		return "No updates for interesting packages"
	}
	noun := "updates"
	if len(aliases) == 1 {
		noun = "update"
	}
	return fmt.Sprintf("%d %s for interesting packages: %s", len(aliases), noun, strings.Join(aliases, ", "))
}

func sortedUnique(names []string) []string {
	out := append([]string(nil), names...)
	sort.Strings(out)
	n := 0
	for i, name := range out {
		if i > 0 && name == out[n-1] {
			continue
		}
		out[n] = name
		n++
	}
	return out[:n]
}
