package middleware_test

import (
	"context"
	"testing"

	"github.com/aretw0/screenwalk/pkg/adapters/memory"
	"github.com/aretw0/screenwalk/pkg/domain"
	"github.com/aretw0/screenwalk/pkg/persistence/middleware"
	"github.com/aretw0/screenwalk/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedactionMiddleware_Contract(t *testing.T) {
	mw, err := middleware.NewRedactionMiddleware([]string{`token=\w+`})
	require.NoError(t, err)
	ports.RunReportStoreContract(t, mw(memory.NewStore()))
}

func TestRedactionMiddleware_Masking(t *testing.T) {
	underlying := memory.NewStore()
	mw, err := middleware.NewRedactionMiddleware([]string{`token=\w+`, `(?i)password`})
	require.NoError(t, err)
	store := middleware.Chain(underlying, mw)

	ctx := context.Background()
	report := &domain.Report{
		ID: "r-1",
		Results: []domain.CaseResult{{
			Name:   "Typing",
			Status: domain.CaseFailed,
			Errors: []string{"url did not contain http://example.com/?token=abc123"},
			Logs:   []string{"TextField, value: 'Password'", "Button, label: 'Settings'"},
		}},
	}
	require.NoError(t, store.Save(ctx, report))

	assert.Equal(t, "url did not contain http://example.com/?token=abc123", report.Results[0].Errors[0],
		"the caller's report is left untouched")

	stored, err := underlying.Load(ctx, "r-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"url did not contain http://example.com/?***"}, stored.Results[0].Errors)
	assert.Equal(t, []string{"TextField, value: '***'", "Button, label: 'Settings'"}, stored.Results[0].Logs)
}

func TestRedactionMiddleware_InvalidPattern(t *testing.T) {
	_, err := middleware.NewRedactionMiddleware([]string{"("})
	assert.ErrorContains(t, err, "invalid redaction pattern")
}
