package harness

import (
	"context"
	"fmt"
	"reflect"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/ext"

	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/unit"
)

// celInterruptEvery is how many comprehension iterations pass between checks
// of the context.
const celInterruptEvery = 100

var nativeMap = reflect.TypeOf(map[string]any{})

// newCELEnv declares params as map(string, dyn) and adds the string
// extension functions.
func newCELEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable(paramsName, cel.MapType(cel.StringType, cel.DynType)),
		ext.Strings(),
	)
}

// exprEngine holds a compiled CEL program. Programs are stateless and shared
// between runs.
type exprEngine struct {
	prg cel.Program
}

func compileExpr(env *cel.Env, text string, costLimit uint64) (*exprEngine, error) {
	ast, iss := env.Compile(text)
	if iss != nil && iss.Err() != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompile, iss.Err())
	}

	opts := []cel.ProgramOption{cel.InterruptCheckFrequency(celInterruptEvery)}
	if costLimit > 0 {
		opts = append(opts, cel.CostLimit(costLimit))
	}
	prg, err := env.Program(ast, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompile, err)
	}
	return &exprEngine{prg: prg}, nil
}

func (e *exprEngine) exec(ctx context.Context, _ *runtime, p unit.Params) (any, error) {
	out, _, err := e.prg.ContextEval(ctx, map[string]any{paramsName: map[string]any(p)})
	if err != nil {
		return nil, err
	}

	switch v := out.Value().(type) {
	case bool, string:
		return v, nil
	}
	m, err := out.ConvertToNative(nativeMap)
	if err != nil {
		return nil, fmt.Errorf("%w: expression produced %s", unit.ErrInvalidResult, out.Type().TypeName())
	}
	return m, nil
}
