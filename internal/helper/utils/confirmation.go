package utils

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"
)

const (
	confirmationPrefix       = "SS-IMM"
	confirmationMaxAttempts  = 100
	confirmationSuffixDigits = 3
)

// GenerateConfirmationNumber builds a code of the form SS-IMM-<ts8>-<rand3>,
// where ts8 is the last 8 digits of the current unix time. exists is queried
// before accepting a candidate; on collision only the random suffix is
// regenerated. After confirmationMaxAttempts the last candidate is accepted
// anyway, and a lookup error also accepts the candidate: code assignment must
// never block application creation, the unique column constraint is the
// backstop.
func GenerateConfirmationNumber(exists func(code string) (bool, error)) string {
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	if len(ts) > 8 {
		ts = ts[len(ts)-8:]
	}

	code := fmt.Sprintf("%s-%s-%s", confirmationPrefix, ts, randomDigits(confirmationSuffixDigits))
	for attempt := 0; attempt < confirmationMaxAttempts; attempt++ {
		taken, err := exists(code)
		if err != nil || !taken {
			return code
		}
		code = fmt.Sprintf("%s-%s-%s", confirmationPrefix, ts, randomDigits(confirmationSuffixDigits))
	}
	return code
}

func randomDigits(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('0' + rand.Intn(10))
	}
	return string(b)
}
