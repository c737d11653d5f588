package main

import (
	"errors"

	"ocp"
)

func Run(params ocp.Params) any {
	v := params.String("valueToValidate")
	if len(v) < 4 {
		panic(errors.New("value too short"))
	}
	return "****" + v[len(v)-4:]
}
