package analyzer

import (
	"slices"

	"chordscope/challenge"
	"chordscope/chord"
)

// Options are the user toggles that shape labels and challenge targets
type Options struct {
	ShowOctaveNames  bool
	ShowNoteLabels   bool
	EnabledRoots     []int // pitch classes
	EnabledTemplates []*chord.Template
}

// DefaultOptions enables every root and the default challenge templates
func DefaultOptions() Options {
	return Options{
		ShowOctaveNames:  true,
		EnabledRoots:     challenge.AllRoots(),
		EnabledTemplates: chord.DefaultChallengeTemplates(),
	}
}

func (o Options) clone() Options {
	o.EnabledRoots = slices.Clone(o.EnabledRoots)
	o.EnabledTemplates = slices.Clone(o.EnabledTemplates)
	return o
}

// RootEnabled reports whether pitch class pc can be a target root
func (o Options) RootEnabled(pc int) bool {
	return slices.Contains(o.EnabledRoots, pc)
}

// TemplateEnabled reports whether t can be a target
func (o Options) TemplateEnabled(t *chord.Template) bool {
	return slices.Contains(o.EnabledTemplates, t)
}

// ToggleRoot flips pc in the enabled roots. It refuses to disable the last
// root and reports whether anything changed.
func (o *Options) ToggleRoot(pc int) bool {
	if i := slices.Index(o.EnabledRoots, pc); i >= 0 {
		if len(o.EnabledRoots) == 1 {
			return false
		}
		o.EnabledRoots = slices.Delete(slices.Clone(o.EnabledRoots), i, i+1)
		return true
	}
	o.EnabledRoots = append(slices.Clone(o.EnabledRoots), pc)
	slices.Sort(o.EnabledRoots)
	return true
}

// ToggleTemplate flips t in the enabled templates. It refuses to disable
// the last template and reports whether anything changed.
func (o *Options) ToggleTemplate(t *chord.Template) bool {
	if i := slices.Index(o.EnabledTemplates, t); i >= 0 {
		if len(o.EnabledTemplates) == 1 {
			return false
		}
		o.EnabledTemplates = slices.Delete(slices.Clone(o.EnabledTemplates), i, i+1)
		return true
	}
	o.EnabledTemplates = append(slices.Clone(o.EnabledTemplates), t)
	return true
}
