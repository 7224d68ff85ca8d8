package middleware

import (
	"context"
	"fmt"
	"regexp"

	"github.com/aretw0/screenwalk/pkg/domain"
	"github.com/aretw0/screenwalk/pkg/ports"
)

// Mask replaces every redacted match.
const Mask = "***"

type redactionMiddleware struct {
	next     ports.ReportStore
	patterns []*regexp.Regexp
}

// NewRedactionMiddleware masks matches of the patterns in case errors and logs
// before they are stored. Accessibility dumps attached to failures carry every
// field value on screen, typed addresses included.
func NewRedactionMiddleware(patternStrings []string) (Middleware, error) {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid redaction pattern %q: %w", p, err)
		}
		patterns[i] = re
	}
	return func(next ports.ReportStore) ports.ReportStore {
		return &redactionMiddleware{next: next, patterns: patterns}
	}, nil
}

func (m *redactionMiddleware) Save(ctx context.Context, report *domain.Report) error {
	// Redact a copy; the runner still holds the original.
	cloned := *report
	cloned.Results = make([]domain.CaseResult, len(report.Results))
	for i, c := range report.Results {
		c.Errors = m.mask(c.Errors)
		c.Logs = m.mask(c.Logs)
		cloned.Results[i] = c
	}
	return m.next.Save(ctx, &cloned)
}

func (m *redactionMiddleware) mask(lines []string) []string {
	if lines == nil {
		return nil
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		for _, p := range m.patterns {
			l = p.ReplaceAllString(l, Mask)
		}
		out[i] = l
	}
	return out
}

func (m *redactionMiddleware) Load(ctx context.Context, id string) (*domain.Report, error) {
	return m.next.Load(ctx, id)
}

func (m *redactionMiddleware) Delete(ctx context.Context, id string) error {
	return m.next.Delete(ctx, id)
}

func (m *redactionMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
