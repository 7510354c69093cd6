// Command genkey prints a fresh API key and the bcrypt hash to put in API_KEY_HASH.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	length := flag.Int("bytes", 32, "Number of random bytes in the key")
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost for the hash")
	flag.Parse()

	key, hash, err := generate(*length, *cost)
	if err != nil {
		log.Fatalf("Failed to generate key: %v", err)
	}

	fmt.Printf("API_KEY=%s\n", key)
	fmt.Printf("API_KEY_HASH=%s\n", hash)
	fmt.Println("\nGive API_KEY to clients and set API_KEY_HASH on the server.")
	fmt.Println("When API_KEY_HASH is set the server ignores API_KEY.")
}

func generate(length, cost int) (string, string, error) {
	if length < 16 {
		return "", "", fmt.Errorf("key length must be at least 16 bytes, got %d", length)
	}
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	key := hex.EncodeToString(buf)

	hash, err := bcrypt.GenerateFromPassword([]byte(key), cost)
	if err != nil {
		return "", "", fmt.Errorf("failed to hash key: %w", err)
	}
	return key, string(hash), nil
}
