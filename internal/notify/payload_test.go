package notify

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"github.com/obentoo/fedora-feedback/internal/common/bodhi"
)

func TestFeedbackURL(t *testing.T) {
	got := FeedbackURL("F40", []string{"foo", "rust-serde"})
	assert.Equal(t, "https://bodhi.fedoraproject.org/updates/?release=F40&status=testing&packages=foo,rust-serde", got)
}

func TestFeedbackURLEmpty(t *testing.T) {
	got := FeedbackURL("F40", nil)
	assert.Equal(t, "https://bodhi.fedoraproject.org/updates/?release=F40&status=testing&packages=", got)
}

func TestFeedbackURLKeepsOrder(t *testing.T) {
	got := FeedbackURL("F41", []string{"zsh", "bash", "zsh"})
	assert.True(t, strings.HasSuffix(got, "packages=zsh,bash,zsh"), got)
}

func TestFeedbackURLPackageNamesVerbatim(t *testing.T) {
	got := FeedbackURL("F40", []string{"libstdc++", "perl-Test-Harness"})
	assert.Equal(t, "https://bodhi.fedoraproject.org/updates/?release=F40&status=testing&packages=libstdc++,perl-Test-Harness", got)
}

func TestInterestsURLSortsAndDeduplicates(t *testing.T) {
	got := InterestsURL("F40", []string{"zsh", "bash", "zsh"})
	assert.True(t, strings.HasSuffix(got, "packages=bash,zsh"), got)
}

func TestFeedbackPayload(t *testing.T) {
	p := FeedbackPayload("F40", []string{"foo"})
	assert.Equal(t, FeedbackSummary, p.Summary)
	assert.Equal(t, FeedbackURL("F40", []string{"foo"}), p.Body)
	assert.Equal(t, DefaultIcon, p.Icon)
}

func TestInterestingPayload(t *testing.T) {
	updates := []bodhi.Update{{Alias: "FEDORA-2024-1"}, {Alias: "FEDORA-2024-2"}}
	p := InterestingPayload("F40", []string{"foo", "bar"}, updates)

	assert.Equal(t, "Updates for interesting packages are available (2)", p.Summary)
	assert.Equal(t, InterestsURL("F40", []string{"bar", "foo"}), p.Body)
	assert.Equal(t, DefaultIcon, p.Icon)
}

func TestSummarizeFeedback(t *testing.T) {
	tests := []struct {
		names []string
		want  string
	}{
		{nil, "No installed updates are waiting for feedback"},
		{[]string{"foo"}, "1 installed package is waiting for feedback: foo"},
		{[]string{"bar", "foo"}, "2 installed packages are waiting for feedback: bar, foo"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SummarizeFeedback(tt.names))
	}
}

func TestSummarizeInteresting(t *testing.T) {
	assert.Equal(t, "No updates for interesting packages", SummarizeInteresting(nil))
	assert.Equal(t, "1 update for interesting packages: U1", SummarizeInteresting([]string{"U1"}))
	assert.Equal(t, "2 updates for interesting packages: U1, U2", SummarizeInteresting([]string{"U1", "U2"}))
}

// TestPropertyFeedbackURLListsEveryName checks that the URL carries the
// names verbatim and in order
func TestPropertyFeedbackURLListsEveryName(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("packages parameter is the comma-joined names", prop.ForAll(
		func(names []string) bool {
			got := FeedbackURL("F40", names)
			return strings.HasSuffix(got, "&packages="+strings.Join(names, ","))
		},
		gen.SliceOf(gen.Identifier()),
	))

	properties.TestingRun(t)
}
