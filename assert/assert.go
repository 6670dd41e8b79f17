// Package assert holds constructor and precondition checks that panic.
// These guard wiring mistakes, not runtime input.
package assert

import "fmt"

func Assert(cond bool, msg string) {
	if !cond {
		panic(msg)
	}
}

func AssertNotNil(a any) {
	if a == nil {
		panic("expect non-nil value")
	}
}

func AssertNotEmpty(s string) {
	if s == "" {
		panic("expected non-empty string")
	}
}

func AssertInRange(v, lo, hi int) {
	if v < lo || v > hi {
		panic(fmt.Sprintf("value %d outside [%d,%d]", v, lo, hi))
	}
}
