// SPDX-License-Identifier: Apache-2.0
package main

import (
	"context"
	"fmt"
	"os"
	"os/user"

	"lucid/internal/config"
	"lucid/repl"
)

func main() {
	cfg, err := config.Load(context.Background(), config.DefaultName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		cfg = config.Default()
	}

	currentUser, err := user.Current()
	if err != nil {
		fmt.Printf("Error getting current user: %v\n", err)
		return
	}

	fmt.Printf("Welcome to the Lucid REPL, %s!\n", currentUser.Username)
	fmt.Println("Type :help for commands, :quit to exit.")
	repl.Start(cfg.REPL)
}
