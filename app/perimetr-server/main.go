package main

import (
	"github.com/hashworks/perimetr/app/perimetr-server/internal/cmd"
)

func main() {
	cmd.Execute()
}
