package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Parse bool
	LSP   bool
	Gops  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Parse = boolEnv("LAX_DEBUG_PARSE")
	d.LSP = boolEnv("LAX_DEBUG_LSP")
	d.Gops = boolEnv("LAX_LSP_GOPS")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

// Parse reports whether parser tracing is on.
func Parse() bool {
	return d.Parse
}

// LSP reports whether language server message logging is on.
func LSP() bool {
	return d.LSP
}

// Gops reports whether the language server should start a gops agent.
func Gops() bool {
	return d.Gops
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(append(d, '\n'))
}
