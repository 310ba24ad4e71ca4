package service

import (
	"fmt"
	"math/rand"
	"time"
)

var monthLetters = [...]string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L"}

// generateOrderCode builds a short human-readable order code:
// month letter + two-digit year + day + two random digits, e.g. "H250714".
// Collisions are possible; the unique index on order_code is the guard and
// callers retry with a fresh code on conflict.
func generateOrderCode(now time.Time) string {
	return fmt.Sprintf("%s%02d%02d%02d",
		monthLetters[now.Month()-1],
		now.Year()%100,
		now.Day(),
		rand.Intn(100))
}
