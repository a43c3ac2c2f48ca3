package pipeline

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Notifier prints the per-file console notices. Colors are only emitted
// when the writer is a terminal.
type Notifier struct {
	w       io.Writer
	success lipgloss.Style
	failure lipgloss.Style
	muted   lipgloss.Style
}

// NewNotifier returns a Notifier writing to w.
func NewNotifier(w io.Writer) *Notifier {
	r := lipgloss.NewRenderer(w)
	return &Notifier{
		w:       w,
		success: r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		failure: r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		muted:   r.NewStyle().Faint(true),
	}
}

// Compiled announces a successful compile.
func (n *Notifier) Compiled(src, dest string) {
	fmt.Fprintf(n.w, "%s %s -> %s\n", n.success.Render("Compiled:"), src, dest)
}

// Failed announces a rejected file together with the compiler's message.
func (n *Notifier) Failed(src string, err error) {
	fmt.Fprintf(n.w, "%s %s: %v\n", n.failure.Render("Failed to compile"), src, err)
}

// Summary prints the totals of a run.
func (n *Notifier) Summary(r *Report) {
	fmt.Fprintln(n.w, n.muted.Render(fmt.Sprintf("%d compiled, %d failed", r.Compiled(), r.Failed())))
}

// Summary prints the run totals through the pipeline's notifier.
func (p *Pipeline) Summary(r *Report) {
	p.notifier.Summary(r)
}
