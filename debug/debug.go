// Package debug provides env-gated debug logging for the model query
// engine. Each concern has its own MODEL_DEBUG_* boolean variable.
package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Match    bool
	Includes bool
	Involves bool
	Walk     bool
}

var d *debug

func init() {
	d = &debug{}
	d.Match = boolEnv("MODEL_DEBUG_MATCH")
	d.Includes = boolEnv("MODEL_DEBUG_INCLUDES")
	d.Involves = boolEnv("MODEL_DEBUG_INVOLVES")
	d.Walk = boolEnv("MODEL_DEBUG_WALK")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Match() bool {
	return d.Match
}
func Includes() bool {
	return d.Includes
}
func Involves() bool {
	return d.Involves
}
func Walk() bool {
	return d.Walk
}

func Logf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, msg, args...)
}
