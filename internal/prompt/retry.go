package prompt

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/models"
)

// Recovery menu values.
const (
	recoveryRetry    = "retry"
	recoveryFallback = "fallback"
	recoveryAbort    = "abort"
)

// RetryWithValidation prompts for a value up to maxAttempts times, running
// validate on each answer. A passing verdict returns immediately; an
// overridable failure offers "use anyway". Cancelling a prompt resolves to
// the fallback when one was supplied, otherwise aborts. After the attempts
// are exhausted a recovery menu offers one more manual try, the fallback
// (if any), or abort. The engine knows nothing about what it validates:
// only the verdict shape.
func RetryWithValidation(p Prompter, logger *slog.Logger, message string,
	validate func(string) models.Verdict, maxAttempts int, fallback *string) (string, error) {

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		decorated := fmt.Sprintf("%s (attempt %d of %d)", message, attempt, maxAttempts)
		value, err := p.Text(decorated)
		if err != nil {
			if errors.Is(err, apperr.ErrCancelled) {
				return resolveCancel(fallback)
			}
			return "", err
		}

		accepted, done, err := check(p, logger, value, validate)
		if done || err != nil {
			return accepted, err
		}
	}

	for {
		options := []string{"Try entering the value once more"}
		values := []string{recoveryRetry}
		if fallback != nil {
			options = append(options, fmt.Sprintf("Use the fallback value (%q)", *fallback))
			values = append(values, recoveryFallback)
		}
		options = append(options, "Abort")
		values = append(values, recoveryAbort)

		choice, err := p.Choice("All attempts used. What now?", options, values)
		if err != nil {
			if errors.Is(err, apperr.ErrCancelled) {
				return resolveCancel(fallback)
			}
			return "", err
		}

		switch choice {
		case recoveryFallback:
			return *fallback, nil
		case recoveryAbort:
			return "", fmt.Errorf("prompt: aborted: %w", apperr.ErrCancelled)
		case recoveryRetry:
			value, err := p.Text(message)
			if err != nil {
				if errors.Is(err, apperr.ErrCancelled) {
					return resolveCancel(fallback)
				}
				return "", err
			}
			accepted, done, err := check(p, logger, value, validate)
			if done || err != nil {
				return accepted, err
			}
			// Still invalid: back to the recovery menu.
		}
	}
}

// check validates one answer. done is true when the value was accepted,
// either by the validator or by an explicit override.
func check(p Prompter, logger *slog.Logger, value string,
	validate func(string) models.Verdict) (string, bool, error) {

	verdict := validate(value)
	if verdict.Valid {
		return value, true, nil
	}

	logger.Debug("validation failed",
		slog.String("error", verdict.Error),
		slog.Bool("overridable", verdict.Overridable))
	p.Notice("Invalid value: " + verdict.Error)
	if verdict.Suggestion != "" {
		p.Notice("Hint: " + verdict.Suggestion)
	}

	if verdict.Overridable {
		choice, err := p.Choice("The value may still work. Use it anyway?",
			[]string{"Use it anyway", "Retry"}, []string{"use", "retry"})
		if err != nil && !errors.Is(err, apperr.ErrCancelled) {
			return "", false, err
		}
		if choice == "use" {
			return value, true, nil
		}
	}
	return "", false, nil
}

// resolveCancel maps a cancelled prompt to the fallback or to an abort.
func resolveCancel(fallback *string) (string, error) {
	if fallback != nil {
		return *fallback, nil
	}
	return "", fmt.Errorf("prompt: cancelled with no fallback: %w", apperr.ErrCancelled)
}
