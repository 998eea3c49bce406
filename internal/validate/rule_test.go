package validate

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
)

func TestRuleCheck(t *testing.T) {
	type testCase struct {
		Script   string
		Value    string
		Expected bool
	}

	testCases := []testCase{
		{Script: `length > 3`, Value: "abcd", Expected: true},
		{Script: `length > 3`, Value: "ab", Expected: false},
		{Script: `value contains "@"`, Value: "a@b.c", Expected: true},
		{Script: `value contains "@"`, Value: "nope", Expected: false},
		{Script: `int(value) >= 16`, Value: "18", Expected: true},
		{Script: `int(value) >= 16`, Value: "12", Expected: false},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d", idx), func(t *testing.T) {
			rule := NewRule(tc.Script)

			valid, err := rule.Check(tc.Value)
			if err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			if e, g := tc.Expected, valid; e != g {
				t.Errorf("rule.Check(%q): expected '%v', got '%v'", tc.Value, e, g)
			}
		})
	}
}

func TestRuleCompileError(t *testing.T) {
	rule := NewRule(`value +`)

	if _, err := rule.Check("anything"); err == nil {
		t.Errorf("expected a compile error")
	}

	// The compile error must be stable across calls
	if _, err := rule.Check("anything"); err == nil {
		t.Errorf("expected the cached compile error")
	}
}

func TestRuleForReusesCompiledRules(t *testing.T) {
	first := RuleFor(`length > 3`)
	second := RuleFor(`length > 3`)

	if first != second {
		t.Errorf("RuleFor should return the same rule for the same script")
	}

	other := RuleFor(`length > 5`)

	if first == other {
		t.Errorf("RuleFor should return distinct rules for distinct scripts")
	}

	valid, err := second.Check("abcd")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if !valid {
		t.Errorf("second.Check(\"abcd\"): expected true")
	}
}

func TestRuleNonBooleanResult(t *testing.T) {
	// AsBool makes non-boolean scripts fail at compile time
	rule := NewRule(`length + 1`)

	if _, err := rule.Check("x"); err == nil {
		t.Errorf("expected an error for a non-boolean rule")
	}
}
