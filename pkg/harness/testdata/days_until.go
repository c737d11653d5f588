package main

import (
	"strconv"
	"time"

	"ocp"
)

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func Run(params ocp.Params) any {
	due, err := time.Parse("2006-01-02", params.String("extValue1"))
	if err != nil {
		return "NaN"
	}
	days := dateOnly(due).Sub(dateOnly(ocp.Now())).Hours() / 24
	return strconv.Itoa(int(days))
}
