// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/tu10ng/racoon/repl"
)

func main() {
	currentUser, err := user.Current()
	if err != nil {
		fmt.Printf("Error getting current user: %v\n", err)
		return
	}

	fmt.Printf("Welcome to the racoon REPL, %s!\n", currentUser.Username)
	fmt.Println("Enter a SysY program, then a blank line to build it (:ast prints the tree, :reset discards it).")
	repl.Start(os.Stdin, os.Stdout)
}
