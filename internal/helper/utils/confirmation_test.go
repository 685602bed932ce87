package utils

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var confirmationPattern = regexp.MustCompile(`^SS-IMM-\d{1,8}-\d{3}$`)

func TestGenerateConfirmationNumberFormat(t *testing.T) {
	code := GenerateConfirmationNumber(func(string) (bool, error) { return false, nil })
	assert.Regexp(t, confirmationPattern, code)
}

func TestGenerateConfirmationNumberRegeneratesSuffixOnly(t *testing.T) {
	var seen []string
	code := GenerateConfirmationNumber(func(candidate string) (bool, error) {
		seen = append(seen, candidate)
		// first two candidates collide
		return len(seen) <= 2, nil
	})

	require.GreaterOrEqual(t, len(seen), 3)
	assert.Regexp(t, confirmationPattern, code)

	// the timestamp segment is stable across retries
	base := seen[0][:strings.LastIndex(seen[0], "-")]
	for _, candidate := range seen {
		assert.Equal(t, base, candidate[:strings.LastIndex(candidate, "-")])
	}
}

func TestGenerateConfirmationNumberGivesUpAfterMaxAttempts(t *testing.T) {
	calls := 0
	code := GenerateConfirmationNumber(func(string) (bool, error) {
		calls++
		return true, nil
	})

	assert.Equal(t, confirmationMaxAttempts, calls)
	assert.Regexp(t, confirmationPattern, code)
}

func TestGenerateConfirmationNumberAcceptsOnLookupError(t *testing.T) {
	calls := 0
	code := GenerateConfirmationNumber(func(string) (bool, error) {
		calls++
		return false, errors.New("db down")
	})

	assert.Equal(t, 1, calls)
	assert.Regexp(t, confirmationPattern, code)
}
