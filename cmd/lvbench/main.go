// SPDX-License-Identifier: MIT

// Command lvbench times repeated matrix-vector products with normalization
// on three linear-algebra backends and cross-checks their results.
//
// Usage:
//
//	lvbench full <n> <reps>
//	lvbench full-cubed <n> <reps>
//	lvbench sparse <refinement> <reps>
//	lvbench config
package main

import "os"

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}
