package main

import "github.com/euroviaje/trip-ledger/cmd"

func main() {
	cmd.Execute()
}
