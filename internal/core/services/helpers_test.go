package services

import (
	"context"
	"sync"

	"github.com/openhouse-labs/dealsync-cli/internal/core/domain"
	"github.com/openhouse-labs/dealsync-cli/internal/core/ports/driving"
)

// stubSettings serves a fixed settings value to services under test.
type stubSettings struct {
	settings domain.AppSettings
	getErr   error
}

func newStubSettings() *stubSettings {
	return &stubSettings{settings: domain.DefaultAppSettings()}
}

func (s *stubSettings) Get() (*domain.AppSettings, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	copied := s.settings
	return &copied, nil
}

func (s *stubSettings) Save(settings *domain.AppSettings) error {
	s.settings = *settings
	return nil
}

func (s *stubSettings) SetUploadMode(mode domain.UploadMode) error {
	s.settings.Upload.Mode = mode
	return nil
}

func (s *stubSettings) SetAuditBackend(backend domain.AuditBackend) error {
	s.settings.Audit.Backend = backend
	return nil
}

func (s *stubSettings) Validate() error {
	return nil
}

func (s *stubSettings) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

var _ driving.SettingsService = (*stubSettings)(nil)

// submission records one SubmitDocument call.
type submission struct {
	TransactionID domain.TransactionID
	Filename      string
	ContentType   string
	Content       []byte
}

// fakeRegistry is a configurable in-memory transaction registry.
type fakeRegistry struct {
	mu sync.Mutex

	// transactions maps identifier keys to their records.
	transactions map[string][]domain.TransactionRecord

	// resolveErrs is consumed one error per Resolve call; nil entries
	// mean success. Once drained, Resolve succeeds.
	resolveErrs []error

	// submitErr fails every SubmitDocument when set. submitErrFor fails
	// submissions of one filename only.
	submitErr    error
	submitErrFor string
	resolveCalls int
	submitCalls  int
	submitted    []submission
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{transactions: make(map[string][]domain.TransactionRecord)}
}

func (r *fakeRegistry) add(key string, txs ...domain.TransactionRecord) {
	r.transactions[key] = append(r.transactions[key], txs...)
}

func (r *fakeRegistry) Resolve(_ context.Context, id domain.Identifier) ([]domain.TransactionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolveCalls++
	if len(r.resolveErrs) > 0 {
		err := r.resolveErrs[0]
		r.resolveErrs = r.resolveErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	txs, ok := r.transactions[id.Key()]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return txs, nil
}

func (r *fakeRegistry) SubmitDocument(_ context.Context, txID domain.TransactionID, filename, contentType string, content []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.submitCalls++
	if r.submitErr != nil {
		return r.submitErr
	}
	if r.submitErrFor != "" && r.submitErrFor == filename {
		return domain.ErrRegistryUnavailable
	}
	r.submitted = append(r.submitted, submission{
		TransactionID: txID,
		Filename:      filename,
		ContentType:   contentType,
		Content:       content,
	})
	return nil
}

func (r *fakeRegistry) submissions() []submission {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]submission, len(r.submitted))
	copy(out, r.submitted)
	return out
}
