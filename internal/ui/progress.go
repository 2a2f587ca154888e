package ui

import (
	"io"

	"github.com/cheggaaa/pb/v3"
)

const progressTemplate = `{{ string . "prefix" }} {{ counters . }} {{ bar . "[" "=" ">" "-" "]" }} {{ percent . }} {{ etime . }}`

// Progress tracks finished languages for one source
type Progress struct {
	bar *pb.ProgressBar
}

// NewProgress starts a progress bar over total languages written to w.
// A nil writer gives a no-op Progress.
func NewProgress(total int, prefix string, w io.Writer) *Progress {
	if w == nil {
		return &Progress{}
	}
	bar := pb.New(total)
	bar.SetWriter(w)
	bar.SetTemplateString(progressTemplate)
	bar.Set("prefix", prefix)
	bar.Start()
	return &Progress{bar: bar}
}

// Increment marks one more language as done
func (p *Progress) Increment() {
	if p.bar != nil {
		p.bar.Increment()
	}
}

// Finish stops the bar and flushes its final state
func (p *Progress) Finish() {
	if p.bar != nil {
		p.bar.Finish()
	}
}
