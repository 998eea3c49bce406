package validate

import (
	"sync"

	"github.com/bornholm/collagio/pkg/syncx"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/pkg/errors"
)

// Rule is a form-field validation expression, compiled on first use.
// The expression sees the submitted value as 'value' and its length as
// 'length', and must evaluate to a boolean.
type Rule struct {
	script  string
	program *vm.Program

	compileOnce sync.Once
	compileErr  error
}

// Check evaluates the rule against a submitted value.
func (r *Rule) Check(value string) (bool, error) {
	program, err := r.getProgram()
	if err != nil {
		return false, errors.WithStack(err)
	}

	env := map[string]any{
		"value":  value,
		"length": len(value),
	}

	result, err := expr.Run(program, env)
	if err != nil {
		return false, errors.WithStack(err)
	}

	valid, ok := result.(bool)
	if !ok {
		return false, errors.Errorf("unexpected rule '%s' result type '%T', expected boolean", r.script, result)
	}

	return valid, nil
}

func (r *Rule) getProgram() (*vm.Program, error) {
	r.compileOnce.Do(func() {
		program, err := expr.Compile(r.script, expr.AsBool())
		if err != nil {
			r.compileErr = errors.WithStack(err)
			return
		}

		r.program = program
	})
	if r.compileErr != nil {
		return nil, errors.WithStack(r.compileErr)
	}

	return r.program, nil
}

func (r *Rule) String() string {
	return r.script
}

func NewRule(script string) *Rule {
	return &Rule{script: script}
}

var rules syncx.Map[string, *Rule]

// RuleFor returns the shared rule for a script so the compiled program
// is reused across requests.
func RuleFor(script string) *Rule {
	rule, _ := rules.LoadOrStore(script, NewRule(script))
	return rule
}
