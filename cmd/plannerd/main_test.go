package main

import (
	"testing"

	"go.viam.com/test"
)

func TestParseRibbons(t *testing.T) {
	ribbons, err := parseRibbons("0,0,0,10; 0,10,10,10")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(ribbons), test.ShouldEqual, 2)
	test.That(t, ribbons[1].End.X, test.ShouldEqual, 10.0)
}

func TestParseRibbonsRejectsMalformedInput(t *testing.T) {
	_, err := parseRibbons("0,0,0")
	test.That(t, err, test.ShouldNotBeNil)

	_, err = parseRibbons("")
	test.That(t, err, test.ShouldNotBeNil)
}
