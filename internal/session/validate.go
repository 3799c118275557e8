package session

// #region imports
import (
	"errors"
	"fmt"
	"strings"
)

// #endregion

// #region errors

// ErrInvalidInput reports input that fails facade validation. No state changes.
var ErrInvalidInput = errors.New("invalid input")

// #endregion

// #region limits

// MaxInputLen bounds both the utterance and the blob.
const MaxInputLen = 10000

// blockedFragments are rejected as literal substrings, case-insensitive.
var blockedFragments = []string{"<script", "javascript:", "eval(", "exec("}

// #endregion

// #region validate

func validateInput(blob, utterance string) error {
	if strings.TrimSpace(utterance) == "" {
		return fmt.Errorf("%w: empty utterance", ErrInvalidInput)
	}
	if len(utterance) > MaxInputLen {
		return fmt.Errorf("%w: utterance exceeds %d chars", ErrInvalidInput, MaxInputLen)
	}
	if len(blob) > MaxInputLen {
		return fmt.Errorf("%w: blob exceeds %d chars", ErrInvalidInput, MaxInputLen)
	}
	lower := strings.ToLower(blob + " " + utterance)
	for _, frag := range blockedFragments {
		if strings.Contains(lower, frag) {
			return fmt.Errorf("%w: blocked fragment %q", ErrInvalidInput, frag)
		}
	}
	return nil
}

func validateSatisfaction(rating int) error {
	if rating < 1 || rating > 10 {
		return fmt.Errorf("%w: satisfaction rating %d outside 1..10", ErrInvalidInput, rating)
	}
	return nil
}

// #endregion
