package usage

import (
	"errors"
	"time"
)

// ErrQuotaExhausted is returned when a client has no generations left
// for the current month.
var ErrQuotaExhausted = errors.New("generation quota exhausted")

// DefaultMonthlyQuota is the number of generations granted per client per month.
const DefaultMonthlyQuota = 100

// Record is one logged generation request.
type Record struct {
	ClientID  string
	Intent    string
	Model     string
	Ideas     int
	Proposals int
	Duration  time.Duration
	CreatedAt time.Time
}
