// scripts/genhash.go

// SEED_PASSWORD='Super-Long-Temp-Password' go run ./scripts

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Pieroprincipe22/tarea-completa-tc/internal/auth"
)

func main() {
	pw := os.Getenv("SEED_PASSWORD")
	if pw == "" {
		log.Fatal("set SEED_PASSWORD")
	}
	phc, err := auth.HashPassword(pw, auth.DefaultArgonParams())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(phc)
}
