// Package debug holds environment-controlled debugging switches for llmd.
//
// Each switch is read once at start-up from an LLMD_DEBUG_* variable. Values
// are parsed with strconv.ParseBool; anything unparsable counts as false.
package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Store   bool
	Parse   bool
	Compose bool
	Graph   bool
}

var d *debug

func init() {
	d = &debug{}
	Reload()
}

// Reload re-reads the LLMD_DEBUG_* variables. It is called after a
// knowledge base's .env file has been loaded into the environment.
func Reload() {
	all := boolEnv("LLMD_DEBUG")
	d.Store = all || boolEnv("LLMD_DEBUG_STORE")
	d.Parse = all || boolEnv("LLMD_DEBUG_PARSE")
	d.Compose = all || boolEnv("LLMD_DEBUG_COMPOSE")
	d.Graph = all || boolEnv("LLMD_DEBUG_GRAPH")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Store() bool {
	return d.Store
}
func Parse() bool {
	return d.Parse
}
func Compose() bool {
	return d.Compose
}
func Graph() bool {
	return d.Graph
}

// Logf writes a debug line to stderr. Maps and slices are rendered as
// indented JSON.
func Logf(msg string, args ...any) {
	for i := range args {
		switch a := args[i].(type) {
		case map[string]any, []any, []string, []int:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
