// Command inspectgen writes inspector views for the types of a package
// marked with //inspect:derive and //inspect:enum. Use it from a
// go:generate line:
//
//	//go:generate go run github.com/hubastard/grove-inspector/cmd/inspectgen
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/hubastard/grove-inspector/engine/inspect/derive"
)

func main() {
	dir := flag.String("dir", ".", "package directory")
	out := flag.String("out", "", "single output file name (default: <file>_inspect.go per source file)")
	verbose := flag.Bool("v", false, "log every derived type")
	flag.Parse()

	cfg := zap.NewDevelopmentConfig()
	if !*verbose {
		cfg.Level.SetLevel(zap.WarnLevel)
	}
	log, err := cfg.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, "inspectgen:", err)
		os.Exit(1)
	}
	defer log.Sync()

	paths, err := derive.Run(derive.Config{Dir: *dir, Out: *out, Log: log})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log.Debug("done", zap.Strings("files", paths))
}
