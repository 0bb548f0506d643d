package dataset

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/progress"
)

// Progress observes a load cycle, one Tick per table. It never affects the
// load itself.
type Progress interface {
	Start(total int)
	Tick(table string)
	Finish()
}

type NopProgress struct{}

func (NopProgress) Start(int)   {}
func (NopProgress) Tick(string) {}
func (NopProgress) Finish()     {}

type barProgress struct {
	w     io.Writer
	bar   progress.Model
	total int
	done  int
}

// NewBarProgress renders a single updating progress bar line to w.
func NewBarProgress(w io.Writer) Progress {
	return &barProgress{
		w:   w,
		bar: progress.New(progress.WithDefaultGradient(), progress.WithWidth(30), progress.WithoutPercentage()),
	}
}

func (p *barProgress) Start(total int) {
	p.total, p.done = total, 0
	p.render("")
}

func (p *barProgress) Tick(table string) {
	p.done++
	p.render(table)
}

func (p *barProgress) Finish() {
	_, _ = fmt.Fprintln(p.w)
}

func (p *barProgress) render(table string) {
	percent := 1.0
	if p.total > 0 {
		percent = float64(p.done) / float64(p.total)
	}
	_, _ = fmt.Fprintf(p.w, "\r%s %d/%d %s\x1b[K", p.bar.ViewAs(percent), p.done, p.total, table)
}
