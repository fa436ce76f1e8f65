// Package observability provides kivi.Reporter implementations: a
// color-coded console reporter for local development and a Sentry-backed
// reporter for production error aggregation.
package observability

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	sentry "github.com/getsentry/sentry-go"
	"github.com/gernest/kivi"
)

// ConsoleReporter writes HandlerException and ChildrenShapeWarning values
// through a line sink (os.Stderr by default), coloring exceptions red and
// shape warnings yellow.
type ConsoleReporter struct {
	out       *color.Color
	warn      *color.Color
	sink      func(string)
	withStack bool
}

var _ kivi.Reporter = (*ConsoleReporter)(nil)

// NewConsoleReporter returns a ConsoleReporter writing to os.Stderr.
func NewConsoleReporter() *ConsoleReporter {
	return &ConsoleReporter{
		out:  color.New(color.FgRed, color.Bold),
		warn: color.New(color.FgYellow),
		sink: func(s string) { fmt.Fprintln(os.Stderr, s) },
	}
}

// WithStack toggles including %+v-style detail for errors that support it
// (currently just widens the Cause formatting verb).
func (c *ConsoleReporter) WithStack(v bool) *ConsoleReporter {
	c.withStack = v
	return c
}

func (c *ConsoleReporter) Report(err error) {
	switch e := err.(type) {
	case *kivi.HandlerException:
		verb := "%v"
		if c.withStack {
			verb = "%+v"
		}
		c.sink(c.out.Sprintf("[kivi] handler panic during %s: "+verb, e.Phase, e.Cause))
	case *kivi.ChildrenShapeWarning:
		c.sink(c.warn.Sprintf("[kivi] %s", e.Error()))
	default:
		c.sink(c.out.Sprintf("[kivi] %s", err.Error()))
	}
}

// SentryReporter forwards HandlerException values to Sentry as exceptions
// and ChildrenShapeWarning values as breadcrumbs, so shape churn shows up as
// context around a later real error rather than as noise on its own.
type SentryReporter struct {
	hub   *sentry.Hub
	level sentry.Level
}

var _ kivi.Reporter = (*SentryReporter)(nil)

// NewSentryReporter wraps hub (sentry.CurrentHub() is a reasonable default).
func NewSentryReporter(hub *sentry.Hub) *SentryReporter {
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	return &SentryReporter{hub: hub, level: sentry.LevelError}
}

func (s *SentryReporter) Report(err error) {
	switch e := err.(type) {
	case *kivi.ChildrenShapeWarning:
		s.hub.AddBreadcrumb(&sentry.Breadcrumb{
			Category: "kivi.reconciler",
			Message:  e.Error(),
			Level:    sentry.LevelWarning,
		}, nil)
		return
	case *kivi.HandlerException:
		s.hub.WithScope(func(scope *sentry.Scope) {
			scope.SetTag("kivi.phase", e.Phase)
			s.hub.CaptureException(e)
		})
		return
	default:
		s.hub.CaptureException(err)
	}
}
