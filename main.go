package main

import "github.com/Nimrod-Galor/Domain-Audit-sub002/cmd"

// execCmd indirection allows tests to verify main wiring.
var execCmd = cmd.Execute

func main() {
	execCmd()
}
