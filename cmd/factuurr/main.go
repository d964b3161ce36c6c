package main

import (
	"fmt"
	"os"

	"github.com/jhoicas/factuurr/internal/interfaces/cli"
)

// @title        factuurr API
// @version      1.0
// @description  Editor local de facturas y offertes belgas: vista previa, líneas, BTW y exportación PDF.
// @BasePath     /
func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
