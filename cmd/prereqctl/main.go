// Command prereqctl is the maintenance CLI for the prerequisite planner:
// parse previews, catalog audits, offline plan validation, database seeding
// and admin token issuance.
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errPlanInvalid) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
