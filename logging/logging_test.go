package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"go.viam.com/test"
)

func TestLoggerWritesThroughAppender(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("test", NewWriterAppender(&buf))

	logger.CInfof(context.Background(), "hello %s", "world")
	test.That(t, logger.SugaredLogger, test.ShouldNotBeNil)
	test.That(t, strings.Contains(buf.String(), "hello world"), test.ShouldBeTrue)
}

func TestZapcoreFieldsToJSONEmptyFields(t *testing.T) {
	// An empty field slice should never panic and should yield valid (empty)
	// JSON rather than an error.
	out, err := ZapcoreFieldsToJSON(nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldEqual, "{}")
}
