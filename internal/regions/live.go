package regions

import "sync/atomic"

// Live is an OptionSource that can be swapped in once loading completes.
// Before Set is called every query returns an empty list.
type Live struct {
	cur atomic.Pointer[optionSourceBox]
}

type optionSourceBox struct{ src OptionSource }

// Set installs src as the active option source.
func (l *Live) Set(src OptionSource) {
	l.cur.Store(&optionSourceBox{src: src})
}

func (l *Live) source() OptionSource {
	if b := l.cur.Load(); b != nil && b.src != nil {
		return b.src
	}
	return nil
}

func (l *Live) Level1Options() []string {
	if src := l.source(); src != nil {
		return src.Level1Options()
	}
	return []string{}
}

func (l *Live) Level2Options(level1 string) []string {
	if src := l.source(); src != nil {
		return src.Level2Options(level1)
	}
	return []string{}
}

func (l *Live) Level3Options(level1, level2 string) []string {
	if src := l.source(); src != nil {
		return src.Level3Options(level1, level2)
	}
	return []string{}
}
