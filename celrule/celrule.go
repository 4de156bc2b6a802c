package celrule

import (
	"fmt"

	"github.com/google/cel-go/cel"

	"github.com/rescuedex/apicheck/schema"
)

// Compile compiles a CEL expression into a field predicate. The expression
// sees the field value as the variable `value` and must evaluate to a bool.
//
// Example:
//
//	check, err := celrule.Compile(`value >= 1.0 && value <= 480.0`)
//	if err != nil {
//		return err
//	}
//	rule := schema.Number().WithCheck(check)
//
// Evaluation errors (for example a type mismatch inside the expression) make
// the predicate return false; the surrounding type checks have usually
// already rejected such values before the predicate runs.
func Compile(expr string) (schema.Predicate, error) {
	env, err := cel.NewEnv(cel.Variable("value", cel.DynType))
	if err != nil {
		return nil, fmt.Errorf("create CEL environment: %w", err)
	}

	ast, iss := env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, fmt.Errorf("compile expression: %w", iss.Err())
	}
	// Dyn is accepted because operations on the dyn-typed `value` variable
	// often infer dyn; a non-bool runtime result simply fails the predicate.
	if t := ast.OutputType(); t != cel.BoolType && t != cel.DynType {
		return nil, fmt.Errorf("expression must evaluate to bool, got %s", t)
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("build program: %w", err)
	}

	return func(value any) bool {
		out, _, err := prg.Eval(map[string]any{"value": value})
		if err != nil {
			return false
		}
		b, ok := out.Value().(bool)
		return ok && b
	}, nil
}

// MustCompile is like Compile but panics on error. Intended for static
// schema setup where a bad expression is a programming error.
func MustCompile(expr string) schema.Predicate {
	p, err := Compile(expr)
	if err != nil {
		panic(fmt.Sprintf("celrule: %v", err))
	}
	return p
}
