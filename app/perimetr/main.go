package main

import (
	"github.com/hashworks/perimetr/app/perimetr/internal/cmd"
)

func main() {
	cmd.Execute()
}
