package harness

import (
	"context"
	"fmt"

	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/unit"
)

type nativeEngine struct {
	fn unit.Func
}

func (e *nativeEngine) exec(ctx context.Context, rt *runtime, p unit.Params) (v any, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()

	res, err := e.fn(rt.env, p)
	if err != nil {
		return nil, err
	}
	return res, nil
}
