package validation

import (
	"fmt"
	"strings"

	"github.com/jonathan/profile-builder/internal/types"
)

// CheckForbiddenPhrases reports every text field containing one of phrases,
// matched case-insensitively. Only the first matching phrase is reported per
// field.
func CheckForbiddenPhrases(fields []types.TextField, phrases []string) []types.Violation {
	if len(phrases) == 0 {
		return nil
	}

	var violations []types.Violation
	for _, f := range fields {
		text := strings.ToLower(f.Text)
		for _, phrase := range phrases {
			normalized := strings.ToLower(strings.TrimSpace(phrase))
			if normalized == "" {
				continue
			}
			if strings.Contains(text, normalized) {
				violations = append(violations, warning(TypeForbiddenPhrase, f.Path,
					fmt.Sprintf("contains forbidden phrase: %s", strings.TrimSpace(phrase))))
				break
			}
		}
	}
	return violations
}
