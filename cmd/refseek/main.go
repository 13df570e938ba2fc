// cmd/refseek/main.go
package main

import (
	"refseek/internal/app"
	"refseek/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }
