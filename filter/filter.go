// Package filter compiles expr expressions for narrowing market-data
// results on the command line, e.g. `Change > 2 && Direction == "up"`.
package filter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/tda-tools/tdactl/tda"
)

// Filter represents a compiled expr filter
type Filter struct {
	program *vm.Program
	expr    string
}

// Compile compiles a filter expression
func Compile(expression string) (*Filter, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, fmt.Errorf("empty filter expression")
	}

	// Static helper functions usable in expressions
	env := helperEnv()

	program, err := expr.Compile(expression,
		expr.Env(env),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compile filter expression: %w", err)
	}

	return &Filter{
		program: program,
		expr:    expression,
	}, nil
}

// String returns the original expression text.
func (f *Filter) String() string {
	return f.expr
}

// MatchMover evaluates the filter against one mover entry. The entry's
// fields are available by name (Symbol, Description, Last, Change,
// Direction, TotalVolume).
func (f *Filter) MatchMover(m tda.Mover) (bool, error) {
	env := helperEnv()
	env["Symbol"] = m.Symbol
	env["Description"] = m.Description
	env["Last"] = m.Last
	env["Change"] = m.Change
	env["Direction"] = m.Direction
	env["TotalVolume"] = m.TotalVolume

	return f.run(env)
}

// MatchCandle evaluates the filter against one candle. The candle's
// fields are available by name (Open, High, Low, Close, Volume), plus
// Time as the candle's timestamp.
func (f *Filter) MatchCandle(c tda.Candle) (bool, error) {
	env := helperEnv()
	env["Open"] = c.Open
	env["High"] = c.High
	env["Low"] = c.Low
	env["Close"] = c.Close
	env["Volume"] = c.Volume
	env["Time"] = time.UnixMilli(c.Datetime)

	return f.run(env)
}

func (f *Filter) run(env map[string]interface{}) (bool, error) {
	output, err := expr.Run(f.program, env)
	if err != nil {
		return false, fmt.Errorf("failed to evaluate filter: %w", err)
	}

	result, ok := output.(bool)
	if !ok {
		return false, fmt.Errorf("filter expression must evaluate to a boolean, got %T", output)
	}
	return result, nil
}

func helperEnv() map[string]interface{} {
	return map[string]interface{}{
		// String helpers
		"contains": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"startsWith": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
		// Numeric helpers
		"abs": math.Abs,
		// Date helpers
		"daysSince": func(t time.Time) int {
			return int(time.Since(t).Hours() / 24)
		},
		"now": time.Now,
	}
}
