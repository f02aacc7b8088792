// Command rangefilter applies adaptive range spectral filtering to raw
// master/slave SLC blocks and inspects the filters it would use.
//
// Usage:
//
//	rangefilter filter --master M.raw --slave S.raw --lines 512 --pixels 1024 \
//	    --out-master M.cflt --out-slave S.cflt
//	rangefilter window --pixels 64 --shift 5 --centered
//
// Parameters can also be given in a YAML file (--config) or through
// RANGEFILTER_* environment variables.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
