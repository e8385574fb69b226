package main

import "github.com/osucad/diffcalc/cmd/diffcalc/cmd"

func main() {
	cmd.Execute()
}
