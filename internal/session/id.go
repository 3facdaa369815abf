package session

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const buildIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateBuildID returns the short identifier stamped into the generated
// README so bundles from different runs can be told apart.
func GenerateBuildID() (string, error) {
	id, err := gonanoid.Generate(buildIDAlphabet, 8)
	if err != nil {
		return "", fmt.Errorf("failed to generate build id: %w", err)
	}

	return id, nil
}
