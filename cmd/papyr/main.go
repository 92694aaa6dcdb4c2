// cmd/papyr/main.go
package main

import (
	"github.com/skellert/papyr/internal/cli"
)

// main starts the papyr CLI by delegating to the cobra root command.
func main() {
	cli.Execute()
}
