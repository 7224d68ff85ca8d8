package domain

import (
	"fmt"
	"time"
)

// ElementKind is the accessibility role of an element.
type ElementKind string

const (
	KindAny            ElementKind = "any"
	KindButton         ElementKind = "button"
	KindCell           ElementKind = "cell"
	KindTextField      ElementKind = "textField"
	KindSwitch         ElementKind = "switch"
	KindTable          ElementKind = "table"
	KindCollectionView ElementKind = "collectionView"
	KindMenuItem       ElementKind = "menuItem"
	KindStaticText     ElementKind = "staticText"
	KindOther          ElementKind = "other"
)

// Selector identifies elements in the accessibility tree.
// ID matches either the accessibility identifier or the label of an element.
// An empty ID matches every element of the kind.
type Selector struct {
	Kind   ElementKind `json:"kind"`
	ID     string      `json:"id,omitempty"`
	Within *Selector   `json:"within,omitempty"`
}

func Any(id string) Selector            { return Selector{Kind: KindAny, ID: id} }
func Button(id string) Selector         { return Selector{Kind: KindButton, ID: id} }
func Cell(id string) Selector           { return Selector{Kind: KindCell, ID: id} }
func TextField(id string) Selector      { return Selector{Kind: KindTextField, ID: id} }
func Switch(id string) Selector         { return Selector{Kind: KindSwitch, ID: id} }
func Table(id string) Selector          { return Selector{Kind: KindTable, ID: id} }
func CollectionView(id string) Selector { return Selector{Kind: KindCollectionView, ID: id} }
func MenuItem(id string) Selector       { return Selector{Kind: KindMenuItem, ID: id} }
func StaticText(id string) Selector     { return Selector{Kind: KindStaticText, ID: id} }

// In scopes the selector to descendants of parent.
func (s Selector) In(parent Selector) Selector {
	p := parent
	s.Within = &p
	return s
}

// Matches reports whether e satisfies the kind and ID of the selector.
// Scoping (Within) is resolved by the driver walking the tree.
func (s Selector) Matches(e Element) bool {
	if s.Kind != KindAny && s.Kind != e.Kind {
		return false
	}
	if s.ID == "" {
		return true
	}
	return s.ID == e.Identifier || s.ID == e.Label
}

func (s Selector) String() string {
	base := fmt.Sprintf("%ss[%q]", s.Kind, s.ID)
	if s.ID == "" {
		base = string(s.Kind) + "s"
	}
	if s.Within != nil {
		return base + " in " + s.Within.String()
	}
	return base
}

// Element is a snapshot of one node of the accessibility tree.
type Element struct {
	Kind       ElementKind `json:"kind"`
	Identifier string      `json:"identifier,omitempty"`
	Label      string      `json:"label,omitempty"`
	Value      string      `json:"value,omitempty"`
	Enabled    bool        `json:"enabled"`
}

// StepKind enumerates the primitive interactions.
type StepKind int

const (
	StepTap StepKind = iota + 1
	StepTypeText
	StepPress
	StepWaitExists
	StepWaitValueContains
)

func (k StepKind) String() string {
	switch k {
	case StepTap:
		return "tap"
	case StepTypeText:
		return "type"
	case StepPress:
		return "press"
	case StepWaitExists:
		return "wait_exists"
	case StepWaitValueContains:
		return "wait_value"
	default:
		return fmt.Sprintf("StepKind(%d)", int(k))
	}
}

// Step is one primitive interaction against the application.
type Step struct {
	Kind     StepKind      `json:"kind"`
	Target   Selector      `json:"target"`
	Text     string        `json:"text,omitempty"`
	Duration time.Duration `json:"duration,omitempty"`
}

func Tap(target Selector) Step { return Step{Kind: StepTap, Target: target} }

func TypeText(target Selector, text string) Step {
	return Step{Kind: StepTypeText, Target: target, Text: text}
}

func Press(target Selector, d time.Duration) Step {
	return Step{Kind: StepPress, Target: target, Duration: d}
}

func WaitExists(target Selector) Step { return Step{Kind: StepWaitExists, Target: target} }

func WaitValueContains(target Selector, text string) Step {
	return Step{Kind: StepWaitValueContains, Target: target, Text: text}
}

func (s Step) String() string {
	switch s.Kind {
	case StepTypeText:
		return fmt.Sprintf("type %q into %s", s.Text, s.Target)
	case StepPress:
		return fmt.Sprintf("press %s for %s", s.Target, s.Duration)
	case StepWaitValueContains:
		return fmt.Sprintf("wait for %s to contain %q", s.Target, s.Text)
	default:
		return fmt.Sprintf("%s %s", s.Kind, s.Target)
	}
}
