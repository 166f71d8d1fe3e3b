package main

import (
    "github.com/bartgrantham/eeprog/cmd"
)

func main() {
    cmd.Execute()
}
