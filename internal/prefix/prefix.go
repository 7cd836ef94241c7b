// Package prefix generates short random file name prefixes.
package prefix

import "math/rand"

// DefaultLength is the number of letters Generate is usually called with.
const DefaultLength = 3

const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Generate returns n uppercase ASCII letters chosen uniformly at random.
// Not suitable for anything security related.
func Generate(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}
