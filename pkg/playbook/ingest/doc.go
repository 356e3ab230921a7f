package ingest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cognicore/playbook/pkg/playbook/internalerr"
)

// Platform scopes a document can declare.
const (
	ScopeYouTube = "youtube"
	ScopeTikTok  = "tiktok"
	ScopeTwitch  = "twitch"
	ScopeAll     = "all"
)

// Kind classifies what a document is written to enumerate.
type Kind string

const (
	KindRoadmap   Kind = "roadmap"
	KindTemplates Kind = "templates"
	KindGuide     Kind = "guide"
)

// Doc represents a loaded playbook document
type Doc struct {
	Name  string // originating file name, used as Tip source
	Kind  Kind
	Scope string // youtube, tiktok, twitch or all
	Niche string // optional niche the document is written for
	Text  string
}

// Validate checks if the document has required fields
func (d *Doc) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return &InputError{Name: "<unnamed>", Cause: errors.New("doc name is required")}
	}

	if !ValidScope(d.Scope) {
		return &InputError{Name: d.Name, Cause: fmt.Errorf("%w: unknown platform scope %q", internalerr.ErrInvalidInput, d.Scope)}
	}

	switch d.Kind {
	case KindRoadmap, KindTemplates, KindGuide:
	default:
		return &InputError{Name: d.Name, Cause: fmt.Errorf("%w: unknown document kind %q", internalerr.ErrInvalidInput, d.Kind)}
	}

	return nil
}

// ValidScope reports whether scope is one of the recognized platform scopes.
func ValidScope(scope string) bool {
	switch scope {
	case ScopeYouTube, ScopeTikTok, ScopeTwitch, ScopeAll:
		return true
	}
	return false
}

// InputError reports a document that cannot be processed at all.
type InputError struct {
	Name  string
	Cause error
}

func (e *InputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("input %s: %v", e.Name, e.Cause)
	}
	return fmt.Sprintf("input %s", e.Name)
}

func (e *InputError) Unwrap() error {
	return e.Cause
}
