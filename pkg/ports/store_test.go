package ports_test

import (
	"context"
	"testing"

	"github.com/aretw0/screenwalk/pkg/domain"
	"github.com/aretw0/screenwalk/pkg/ports"
)

// MockStore is a minimal map-backed ReportStore used to check the contract itself.
type MockStore struct {
	data map[string]domain.Report
}

func NewMockStore() *MockStore {
	return &MockStore{data: make(map[string]domain.Report)}
}

func (m *MockStore) Save(ctx context.Context, report *domain.Report) error {
	copied := *report
	copied.Results = append([]domain.CaseResult(nil), report.Results...)
	m.data[report.ID] = copied
	return nil
}

func (m *MockStore) Load(ctx context.Context, id string) (*domain.Report, error) {
	report, ok := m.data[id]
	if !ok {
		return nil, domain.ErrReportNotFound
	}
	report.Results = append([]domain.CaseResult(nil), report.Results...)
	return &report, nil
}

func (m *MockStore) Delete(ctx context.Context, id string) error {
	delete(m.data, id)
	return nil
}

func (m *MockStore) List(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(m.data))
	for id := range m.data {
		ids = append(ids, id)
	}
	return ids, nil
}

func TestReportStore_Contract(t *testing.T) {
	ports.RunReportStoreContract(t, NewMockStore())
}
