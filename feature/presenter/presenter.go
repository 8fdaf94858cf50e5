package presenter

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/JakeMartin-ICL/steam-storage-optimiser/core/reconcile"
	"github.com/JakeMartin-ICL/steam-storage-optimiser/core/report"

	"github.com/fatih/color"
)

// Presenter writes everything the user sees: status lines, the two report
// tables and the prompts.
type Presenter struct {
	out io.Writer
	in  *bufio.Reader

	okColor    *color.Color
	warnColor  *color.Color
	noteColor  *color.Color
	errorColor *color.Color
	labelColor *color.Color
}

// New creates a presenter writing to out and reading answers from in. When
// noColor is set no escape sequences are written.
func New(out io.Writer, in io.Reader, noColor bool) *Presenter {
	p := &Presenter{
		out:        out,
		in:         bufio.NewReader(in),
		okColor:    color.New(color.FgGreen, color.Bold),
		warnColor:  color.New(color.FgYellow, color.Bold),
		noteColor:  color.New(color.FgHiBlack, color.Bold),
		errorColor: color.New(color.FgRed, color.Bold),
		labelColor: color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.okColor, p.warnColor, p.noteColor, p.errorColor, p.labelColor} {
		if noColor {
			c.DisableColor()
		} else {
			c.EnableColor()
		}
	}
	return p
}

// Ok reports a successful step.
func (p *Presenter) Ok(format string, args ...any) { p.status(p.okColor, format, args...) }

// Warn reports a recoverable problem.
func (p *Presenter) Warn(format string, args ...any) { p.status(p.warnColor, format, args...) }

// Note reports progress.
func (p *Presenter) Note(format string, args ...any) { p.status(p.noteColor, format, args...) }

// Error reports a fatal problem. It does not exit.
func (p *Presenter) Error(format string, args ...any) { p.status(p.errorColor, format, args...) }

// status prints a line whose first sentence is coloured.
func (p *Presenter) status(c *color.Color, format string, args ...any) {
	head, tail := firstSentence(fmt.Sprintf(format, args...))
	if tail == "" {
		fmt.Fprintln(p.out, c.Sprint(head))
		return
	}
	fmt.Fprintf(p.out, "%s %s\n", c.Sprint(head), tail)
}

// firstSentence splits msg after the first full stop that is followed by a
// space, so dots inside paths and URLs do not end the sentence.
func firstSentence(msg string) (string, string) {
	i := strings.Index(msg, ". ")
	if i < 0 {
		return msg, ""
	}
	return msg[:i+1], strings.TrimLeft(msg[i+1:], " ")
}

// Matched renders the ranked report of matched games followed by the totals.
func (p *Presenter) Matched(rows []report.Row) {
	p.Note("\nFound and matched %d games. Ranked by hours played per GB of disk:", len(rows))
	if len(rows) == 0 {
		return
	}

	w := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		p.labelColor.Sprint("NAME"),
		p.labelColor.Sprint("SIZE"),
		p.labelColor.Sprint("PLAYTIME"),
		p.labelColor.Sprint("HOURS/GB"),
		p.labelColor.Sprint("CUMULATIVE SIZE"),
		p.labelColor.Sprint("CUMULATIVE TIME"),
		p.labelColor.Sprint("INSTALLED"))
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%s\t%s\t%s\n",
			row.Name, row.SizeHuman, row.PlaytimeHuman, row.HoursPerGiB,
			row.CumulativeSizeHuman, row.CumulativeTimeHuman, row.InstalledMarker)
	}
	w.Flush()

	totals := report.Summarise(rows)
	fmt.Fprintf(p.out, "\n%d games (%d installed) take %s for %s of playtime.\n",
		totals.Games, totals.Installed, totals.SizeHuman, totals.PlaytimeHuman)
}

// Unmatched renders the games for which no size is known. Nothing is printed
// when rows is empty.
func (p *Presenter) Unmatched(rows []reconcile.UnmatchedRow) {
	if len(rows) == 0 {
		return
	}

	p.Note("\n%d games not matched. These games are not installed and not yet in the database:", len(rows))
	w := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", p.labelColor.Sprint("NAME"), p.labelColor.Sprint("PLAYTIME"))
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%s\n", row.Name, row.PlaytimeHuman)
	}
	w.Flush()
}

// Prompt asks a question and returns the trimmed answer. At end of input the
// answer read so far is returned without error.
func (p *Presenter) Prompt(question string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", question)
	answer, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

// Pause prints msg and waits for Enter.
func (p *Presenter) Pause(msg string) {
	fmt.Fprint(p.out, msg)
	_, _ = p.in.ReadString('\n')
}
