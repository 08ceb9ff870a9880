package sentry

import (
	"context"
	"fmt"
	"regexp"
	"runtime"
	"time"

	"github.com/getsentry/sentry-go"
)

const (
	flushTimeout   = 2 * time.Second
	maxBreadcrumbs = 20
)

// Regex patterns for PII scrubbing
var (
	// Matches common home directory patterns: /home/username, /Users/username, C:\Users\username
	homePathPattern = regexp.MustCompile(`(?i)(/home/|/Users/|C:\\Users\\)([^/\\:]+)`)
	// Matches API keys and tokens in error messages
	apiKeyPattern = regexp.MustCompile(`(?i)(sk-ant-api\d+-|sk-|api[_-]?key[=:]\s*)([A-Za-z0-9_-]{10,})`)
	// Matches email addresses
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
)

// DSN is injected at build time via ldflags for release builds.
// Example: go build -ldflags "-X github.com/detent/triage/internal/sentry.DSN=https://..."
// Empty by default, which keeps reporting disabled.
var DSN string

// Init initializes the Sentry SDK with the given version.
// Returns a cleanup function that should be deferred.
func Init(version string) func() {
	if DSN == "" {
		return func() {}
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              DSN,
		Release:          "triage@" + version,
		Environment:      "production",
		ServerName:       runtime.GOOS + "-" + runtime.GOARCH, // Platform info only, no PII
		AttachStacktrace: true,
		SampleRate:       1.0,
		MaxBreadcrumbs:   maxBreadcrumbs,
		IgnoreErrors: []string{
			"Failed to read JSON file", // user input problem, not a bug
			"broken pipe",
		},
		BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			scrubEvent(event)
			return event
		},
		BeforeBreadcrumb: func(breadcrumb *sentry.Breadcrumb, _ *sentry.BreadcrumbHint) *sentry.Breadcrumb {
			breadcrumb.Message = scrubPII(breadcrumb.Message)
			return breadcrumb
		},
	})
	if err != nil {
		return func() {}
	}

	return func() {
		sentry.Flush(flushTimeout)
	}
}

// CaptureError reports an error to Sentry if initialized.
// Safe to call even if Sentry is not configured.
func CaptureError(err error) {
	if err == nil {
		return
	}
	sentry.CaptureException(err)
}

// Recover turns a recovered panic value into an error and reports it.
// Call it with the result of recover(); a nil value returns nil.
//
//	defer func() {
//		if err := sentry.Recover(recover()); err != nil { ... }
//	}()
func Recover(r any) error {
	if r == nil {
		return nil
	}
	sentry.CurrentHub().RecoverWithContext(context.Background(), r)
	sentry.Flush(flushTimeout)

	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}

// AddBreadcrumb adds context for debugging.
func AddBreadcrumb(category, message string) {
	sentry.AddBreadcrumb(&sentry.Breadcrumb{
		Category:  category,
		Message:   message,
		Level:     sentry.LevelInfo,
		Timestamp: time.Now(),
	})
}

// SetTag sets a tag for filtering errors.
// Values are scrubbed of PII before being set.
func SetTag(key, value string) {
	sentry.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag(key, scrubPII(value))
	})
}

// scrubPII removes personally identifiable information from a string.
// This includes usernames in paths, API keys, and email addresses.
func scrubPII(s string) string {
	s = homePathPattern.ReplaceAllString(s, "${1}[user]")
	s = apiKeyPattern.ReplaceAllString(s, "${1}[REDACTED]")
	s = emailPattern.ReplaceAllString(s, "[email]")
	return s
}

// scrubEvent removes PII from all parts of a Sentry event.
// Diagnostic messages routinely embed absolute source paths, so stack
// frames, breadcrumbs, extras and tags are all scrubbed.
func scrubEvent(event *sentry.Event) {
	event.Message = scrubPII(event.Message)

	for i := range event.Exception {
		event.Exception[i].Value = scrubPII(event.Exception[i].Value)

		if event.Exception[i].Stacktrace != nil {
			for j := range event.Exception[i].Stacktrace.Frames {
				frame := &event.Exception[i].Stacktrace.Frames[j]
				frame.AbsPath = scrubPII(frame.AbsPath)
				frame.Filename = scrubPII(frame.Filename)
			}
		}
	}

	for i := range event.Breadcrumbs {
		event.Breadcrumbs[i].Message = scrubPII(event.Breadcrumbs[i].Message)
	}

	for key, value := range event.Extra {
		if str, ok := value.(string); ok {
			event.Extra[key] = scrubPII(str)
		}
	}

	for key, value := range event.Tags {
		event.Tags[key] = scrubPII(value)
	}
}
