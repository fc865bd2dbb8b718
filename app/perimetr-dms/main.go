package main

import (
	"github.com/hashworks/perimetr/app/perimetr-dms/internal/cmd"
)

func main() {
	cmd.Execute()
}
