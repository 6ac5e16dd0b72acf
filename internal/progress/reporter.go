package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Reporter provides feedback during long catalog operations.
type Reporter interface {
	Start(total int)
	Update(current int, message string)
	Finish()
}

// New picks a reporter for the environment: a terminal bar normally, plain
// milestone lines when running under CI.
func New(label string) Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIReporter{label: label, out: os.Stderr}
	}
	return &TerminalReporter{label: label}
}

// TerminalReporter renders an interactive progress bar.
type TerminalReporter struct {
	label string
	bar   *progressbar.ProgressBar
}

func (r *TerminalReporter) Start(total int) {
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription(r.label),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *TerminalReporter) Update(current int, message string) {
	if r.bar == nil {
		return
	}
	if message != "" {
		r.bar.Describe(fmt.Sprintf("%s (%s)", r.label, message))
	}
	_ = r.bar.Set(current)
}

func (r *TerminalReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

// CIReporter prints plain lines for CI logs, at most one per tenth of the
// total so a large catalog does not flood the build output.
type CIReporter struct {
	label string
	out   io.Writer
	total int
	step  int
	next  int
}

func (r *CIReporter) Start(total int) {
	if r.out == nil {
		r.out = os.Stderr
	}
	r.total = total
	r.step = total / 10
	if r.step < 1 {
		r.step = 1
	}
	r.next = r.step
	fmt.Fprintf(r.out, "%s: 0/%d\n", r.label, total)
}

func (r *CIReporter) Update(current int, message string) {
	if current < r.next && current != r.total {
		return
	}
	r.next = current + r.step
	fmt.Fprintf(r.out, "%s: %d/%d %s\n", r.label, current, r.total, message)
}

func (r *CIReporter) Finish() {
	fmt.Fprintf(r.out, "%s: done\n", r.label)
}
