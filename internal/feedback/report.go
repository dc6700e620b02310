package feedback

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/obentoo/fedora-feedback/internal/classify"
	"github.com/obentoo/fedora-feedback/internal/common/output"
	"github.com/obentoo/fedora-feedback/internal/inventory"
	"github.com/obentoo/fedora-feedback/internal/nevra"
	"github.com/obentoo/fedora-feedback/internal/notify"
)

const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// ErrUnknownFormat is returned for an unsupported --format value
var ErrUnknownFormat = errors.New("unknown output format")

// Report is what a run prints
type Report struct {
	Release         string              `yaml:"release"`
	FeedbackPending []string            `yaml:"feedback_pending"`
	FeedbackURL     string              `yaml:"feedback_url,omitempty"`
	Interesting     []InterestingUpdate `yaml:"interesting_pending"`
	InterestsURL    string              `yaml:"interests_url,omitempty"`
}

// InterestingUpdate is an update for a watched package
type InterestingUpdate struct {
	Alias    string          `yaml:"alias"`
	Title    string          `yaml:"title,omitempty"`
	Status   string          `yaml:"status,omitempty"`
	URL      string          `yaml:"url,omitempty"`
	Packages []PackageChange `yaml:"packages"`
}

// PackageChange pairs a pending build with the installed versions of the package
type PackageChange struct {
	Name string `yaml:"name"`
	// Installed lists installed version-releases, oldest first
	Installed []string `yaml:"installed"`
	Pending   string   `yaml:"pending"`
}

// NewReport assembles the report of a classification
func NewReport(release string, interests []string, inv *inventory.Inventory, result *classify.Result) *Report {
	r := &Report{
		Release:         release,
		FeedbackPending: result.FeedbackPending,
		Interesting:     make([]InterestingUpdate, 0, len(result.InterestingPending)),
	}
	if r.FeedbackPending == nil {
		r.FeedbackPending = []string{}
	}
	if len(result.FeedbackPending) > 0 {
		r.FeedbackURL = notify.FeedbackURL(release, result.FeedbackPending)
	}

	for _, u := range result.InterestingPending {
		iu := InterestingUpdate{Alias: u.Alias, Title: u.Title, Status: u.Status, URL: u.URL}
		for _, b := range u.Builds {
			pending, err := nevra.ParseNVR(b.NVR)
			if err != nil {
				// already reported by the classifier in lenient mode
				continue
			}
			change := PackageChange{Name: pending.Name, Pending: pending.VR(), Installed: []string{}}
			for _, nvr := range inv.Installed(pending.Name) {
				change.Installed = append(change.Installed, nvr.VR())
			}
			iu.Packages = append(iu.Packages, change)
		}
		r.Interesting = append(r.Interesting, iu)
	}
	if len(r.Interesting) > 0 {
		r.InterestsURL = notify.InterestsURL(release, interests)
	}
	return r
}

// Render writes the report in the given format
func (r *Report) Render(w io.Writer, format string) error {
	switch format {
	case "", FormatText:
		r.renderText(w)
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q (expected %s or %s)", ErrUnknownFormat, format, FormatText, FormatYAML)
	}
}

func (r *Report) renderText(w io.Writer) {
	fmt.Fprintf(w, "%s %s\n\n", output.Sprint(output.Header, "Fedora release"), r.Release)

	fmt.Fprintln(w, notify.SummarizeFeedback(r.FeedbackPending))
	if r.FeedbackURL != "" {
		output.Box(w, "Give feedback", output.FormatLink(r.FeedbackURL))
	} else {
		fmt.Fprintln(w)
	}

	aliases := make([]string, 0, len(r.Interesting))
	for _, u := range r.Interesting {
		aliases = append(aliases, u.Alias)
	}
	fmt.Fprintln(w, notify.SummarizeInteresting(aliases))
	if len(aliases) == 0 {
		return
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Update", "Status", "Package", "Installed", "Pending"})
	for _, u := range r.Interesting {
		for _, p := range u.Packages {
			installed := strings.Join(p.Installed, ", ")
			if installed == "" {
				installed = output.Sprint(output.Dim, "-")
			}
			tw.AppendRow(table.Row{u.Alias, output.FormatStatus(u.Status), output.FormatPackage(p.Name, ""), installed, output.Sprint(output.Testing, p.Pending)})
		}
	}
	tw.Render()

	output.Box(w, "Interesting packages", output.FormatLink(r.InterestsURL))
}
