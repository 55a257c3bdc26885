// Package validate checks player input against Call Break's table rules.
//
// Failures come in two classes: blocking errors, and warning entries
// prefixed with WarningPrefix that are surfaced to the user but do not make
// the result invalid.
package validate

import (
	"fmt"
	"strings"

	"github.com/okian/callbreak/internal/domain/model"
)

// WarningPrefix marks non-blocking entries in Result.Errors.
const WarningPrefix = "Warning: "

// Result reports the outcome of a validation pass. Valid is true only when
// every entry in Errors is warning-class.
type Result struct {
	Valid  bool
	Errors []string
}

// IsWarning reports whether a validation message is warning-class.
func IsWarning(msg string) bool {
	return strings.HasPrefix(msg, WarningPrefix)
}

// Calls validates a round's calls: one per player, no duplicate player IDs,
// every call inside [model.MinCall, model.MaxCall].
func Calls(calls []model.PlayerCall, expectedPlayerCount int) Result {
	var errs []string

	if len(calls) != expectedPlayerCount {
		errs = append(errs, fmt.Sprintf("Expected %d calls, got %d", expectedPlayerCount, len(calls)))
	}

	seen := make(map[string]struct{}, len(calls))
	for _, c := range calls {
		seen[c.PlayerID] = struct{}{}
	}
	if len(seen) != len(calls) {
		errs = append(errs, "Duplicate player IDs found")
	}

	for i, c := range calls {
		if c.Call < model.MinCall || c.Call > model.MaxCall {
			errs = append(errs, fmt.Sprintf("Player %d: Call must be between %d and %d", i+1, model.MinCall, model.MaxCall))
		}
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}

// Results validates a round's results: one per player, no duplicate player
// IDs, every count inside [0, model.TricksPerRound], and the counts summing
// to exactly model.TricksPerRound.
func Results(results []model.PlayerResult, expectedPlayerCount int) Result {
	var errs []string

	if len(results) != expectedPlayerCount {
		errs = append(errs, fmt.Sprintf("Expected %d results, got %d", expectedPlayerCount, len(results)))
	}

	seen := make(map[string]struct{}, len(results))
	for _, r := range results {
		seen[r.PlayerID] = struct{}{}
	}
	if len(seen) != len(results) {
		errs = append(errs, "Duplicate player IDs found")
	}

	total := 0
	for i, r := range results {
		if r.TricksWon < 0 || r.TricksWon > model.TricksPerRound {
			errs = append(errs, fmt.Sprintf("Player %d: Result must be between 0 and %d", i+1, model.TricksPerRound))
		}
		total += r.TricksWon
	}

	if len(results) > 0 && total != model.TricksPerRound {
		errs = append(errs, fmt.Sprintf("Total tricks must equal %d (current: %d)", model.TricksPerRound, total))
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}

// PlayerNames validates player names. Empty or whitespace-only names are
// blocking errors; duplicate names (trimmed, case-insensitive) add a
// warning-class entry that does not invalidate the result.
func PlayerNames(names []string) Result {
	var errs []string

	for i, name := range names {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, fmt.Sprintf("Player %d: Name cannot be empty", i+1))
		}
	}

	unique := make(map[string]struct{}, len(names))
	for _, name := range names {
		unique[strings.ToLower(strings.TrimSpace(name))] = struct{}{}
	}
	if len(unique) != len(names) {
		errs = append(errs, WarningPrefix+"Some players have the same name")
	}

	valid := true
	for _, e := range errs {
		if !IsWarning(e) {
			valid = false
			break
		}
	}
	return Result{Valid: valid, Errors: errs}
}
