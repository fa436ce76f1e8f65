package observability

import (
	"testing"

	"github.com/gernest/kivi"
	"github.com/stretchr/testify/assert"
)

func TestConsoleReporterFormatsHandlerException(t *testing.T) {
	var captured string
	r := NewConsoleReporter()
	r.sink = func(s string) { captured = s }

	r.Report(&kivi.HandlerException{Phase: "component-update", Cause: "boom"})

	assert.Contains(t, captured, "component-update")
	assert.Contains(t, captured, "boom")
}

func TestConsoleReporterFormatsShapeWarning(t *testing.T) {
	var captured string
	r := NewConsoleReporter()
	r.sink = func(s string) { captured = s }

	r.Report(&kivi.ChildrenShapeWarning{})

	assert.Contains(t, captured, "track-by-key")
}
