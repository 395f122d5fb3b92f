// Command hashpass prints a bcrypt hash suitable for USER_PASSWORD.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/Skotchmaster/portfolio/internal/hash"
)

func main() {
	var password string
	if len(os.Args) > 1 {
		password = os.Args[1]
	} else {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			log.Fatalf("read password: %v", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}
	if password == "" {
		log.Fatal("usage: hashpass <password> (or pass it on stdin)")
	}

	hashed, err := hash.HashPassword(password)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}
	fmt.Println(hashed)
}
