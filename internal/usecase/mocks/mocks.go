// Package mocks provides in-memory test doubles for the usecase interfaces.
// Each mock keeps map-backed default behavior and lets a test override any
// method through its Func field.
package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mfreita/contas/internal/domain"
)

func scoped(workspaceID, id string) string {
	return workspaceID + "/" + id
}

// MockAccountRepository is an in-memory AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc        func(ctx context.Context, workspaceID string, account *domain.Account) error
	GetByIDFunc       func(ctx context.Context, workspaceID, id string) (*domain.Account, error)
	UpdateFunc        func(ctx context.Context, workspaceID string, account *domain.Account) error
	AdjustBalanceFunc func(ctx context.Context, workspaceID, id string, delta decimal.Decimal, at time.Time) error
	ListFunc          func(ctx context.Context, workspaceID string, limit int) ([]*domain.Account, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{accounts: make(map[string]*domain.Account)}
}

func (m *MockAccountRepository) Create(ctx context.Context, workspaceID string, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, workspaceID, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[scoped(workspaceID, account.ID)] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, workspaceID, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, workspaceID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.accounts[scoped(workspaceID, id)]; ok {
		return a, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) Update(ctx context.Context, workspaceID string, account *domain.Account) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, workspaceID, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := scoped(workspaceID, account.ID)
	if _, ok := m.accounts[key]; !ok {
		return domain.ErrAccountNotFound
	}
	m.accounts[key] = account
	return nil
}

func (m *MockAccountRepository) AdjustBalance(ctx context.Context, workspaceID, id string, delta decimal.Decimal, at time.Time) error {
	if m.AdjustBalanceFunc != nil {
		return m.AdjustBalanceFunc(ctx, workspaceID, id, delta, at)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	account, ok := m.accounts[scoped(workspaceID, id)]
	if !ok {
		return domain.ErrAccountNotFound
	}
	account.Balance = account.ApplyDelta(delta)
	account.UpdatedAt = at
	return nil
}

func (m *MockAccountRepository) List(ctx context.Context, workspaceID string, limit int) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, workspaceID, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Account
	for _, a := range m.accounts {
		if a.WorkspaceID == workspaceID && len(result) < limit {
			result = append(result, a)
		}
	}
	return result, nil
}

// MockCardRepository is an in-memory CardRepository.
type MockCardRepository struct {
	mu    sync.RWMutex
	cards map[string]*domain.Card

	GetByIDFunc func(ctx context.Context, workspaceID, id string) (*domain.Card, error)
}

func NewMockCardRepository() *MockCardRepository {
	return &MockCardRepository{cards: make(map[string]*domain.Card)}
}

func (m *MockCardRepository) Create(ctx context.Context, workspaceID string, card *domain.Card) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cards[scoped(workspaceID, card.ID)] = card
	return nil
}

func (m *MockCardRepository) GetByID(ctx context.Context, workspaceID, id string) (*domain.Card, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, workspaceID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.cards[scoped(workspaceID, id)]; ok {
		return c, nil
	}
	return nil, domain.ErrCardNotFound
}

func (m *MockCardRepository) List(ctx context.Context, workspaceID string) ([]*domain.Card, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Card
	for _, c := range m.cards {
		if c.WorkspaceID == workspaceID {
			result = append(result, c)
		}
	}
	return result, nil
}

// MockTransactionRepository is an in-memory TransactionRepository.
type MockTransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]*domain.Transaction

	CreateFunc            func(ctx context.Context, workspaceID string, transaction *domain.Transaction) error
	DeleteFunc            func(ctx context.Context, workspaceID, id string) error
	ListPaidByAccountFunc func(ctx context.Context, workspaceID, accountID string) ([]*domain.Transaction, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{transactions: make(map[string]*domain.Transaction)}
}

func (m *MockTransactionRepository) Create(ctx context.Context, workspaceID string, transaction *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, workspaceID, transaction)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions[scoped(workspaceID, transaction.ID)] = transaction
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, workspaceID, id string) (*domain.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.transactions[scoped(workspaceID, id)]; ok {
		return t, nil
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) Update(ctx context.Context, workspaceID string, transaction *domain.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := scoped(workspaceID, transaction.ID)
	if _, ok := m.transactions[key]; !ok {
		return domain.ErrTransactionNotFound
	}
	m.transactions[key] = transaction
	return nil
}

func (m *MockTransactionRepository) Delete(ctx context.Context, workspaceID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, workspaceID, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := scoped(workspaceID, id)
	if _, ok := m.transactions[key]; !ok {
		return domain.ErrTransactionNotFound
	}
	delete(m.transactions, key)
	return nil
}

func (m *MockTransactionRepository) ListByCard(ctx context.Context, workspaceID, cardID string) ([]*domain.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Transaction
	for _, t := range m.transactions {
		if t.WorkspaceID == workspaceID && t.CardID == cardID {
			result = append(result, t)
		}
	}
	return result, nil
}

func (m *MockTransactionRepository) ListPaidByAccount(ctx context.Context, workspaceID, accountID string) ([]*domain.Transaction, error) {
	if m.ListPaidByAccountFunc != nil {
		return m.ListPaidByAccountFunc(ctx, workspaceID, accountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Transaction
	for _, t := range m.transactions {
		if t.WorkspaceID == workspaceID && t.Status == domain.TransactionPaid && t.TouchesAccount(accountID) {
			result = append(result, t)
		}
	}
	return result, nil
}

// MockStatementRepository is an in-memory StatementRepository.
type MockStatementRepository struct {
	mu         sync.RWMutex
	statements map[string]*domain.CardStatement

	CreateFunc    func(ctx context.Context, workspaceID string, statement *domain.CardStatement) error
	UpdateFunc    func(ctx context.Context, workspaceID string, statement *domain.CardStatement) error
	FindByKeyFunc func(ctx context.Context, workspaceID, cardID string, key domain.StatementKey) ([]*domain.CardStatement, error)
}

func NewMockStatementRepository() *MockStatementRepository {
	return &MockStatementRepository{statements: make(map[string]*domain.CardStatement)}
}

func (m *MockStatementRepository) Create(ctx context.Context, workspaceID string, statement *domain.CardStatement) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, workspaceID, statement)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statements[scoped(workspaceID, statement.ID)] = statement
	return nil
}

func (m *MockStatementRepository) GetByID(ctx context.Context, workspaceID, id string) (*domain.CardStatement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.statements[scoped(workspaceID, id)]; ok {
		return s, nil
	}
	return nil, domain.ErrStatementNotFound
}

func (m *MockStatementRepository) Update(ctx context.Context, workspaceID string, statement *domain.CardStatement) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, workspaceID, statement)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := scoped(workspaceID, statement.ID)
	if _, ok := m.statements[key]; !ok {
		return domain.ErrStatementNotFound
	}
	m.statements[key] = statement
	return nil
}

func (m *MockStatementRepository) Delete(ctx context.Context, workspaceID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.statements, scoped(workspaceID, id))
	return nil
}

func (m *MockStatementRepository) FindByKey(ctx context.Context, workspaceID, cardID string, key domain.StatementKey) ([]*domain.CardStatement, error) {
	if m.FindByKeyFunc != nil {
		return m.FindByKeyFunc(ctx, workspaceID, cardID, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.CardStatement
	for _, s := range m.statements {
		if s.WorkspaceID == workspaceID && s.CardID == cardID && s.Key() == key {
			result = append(result, s)
		}
	}
	return result, nil
}

func (m *MockStatementRepository) ListByCard(ctx context.Context, workspaceID, cardID string) ([]*domain.CardStatement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.CardStatement
	for _, s := range m.statements {
		if s.WorkspaceID == workspaceID && s.CardID == cardID {
			result = append(result, s)
		}
	}
	return result, nil
}

// MockBillRepository is an in-memory BillRepository.
type MockBillRepository struct {
	mu    sync.RWMutex
	bills map[string]*domain.RecurringBill
}

func NewMockBillRepository() *MockBillRepository {
	return &MockBillRepository{bills: make(map[string]*domain.RecurringBill)}
}

func (m *MockBillRepository) Create(ctx context.Context, workspaceID string, bill *domain.RecurringBill) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bills[scoped(workspaceID, bill.ID)] = bill
	return nil
}

func (m *MockBillRepository) GetByID(ctx context.Context, workspaceID, id string) (*domain.RecurringBill, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if b, ok := m.bills[scoped(workspaceID, id)]; ok {
		return b, nil
	}
	return nil, domain.ErrBillNotFound
}

func (m *MockBillRepository) ListActive(ctx context.Context, workspaceID string) ([]*domain.RecurringBill, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.RecurringBill
	for _, b := range m.bills {
		if b.WorkspaceID == workspaceID && b.IsActive {
			result = append(result, b)
		}
	}
	return result, nil
}

// MockBillPaymentRepository is an in-memory BillPaymentRepository.
type MockBillPaymentRepository struct {
	mu       sync.RWMutex
	payments map[string]*domain.BillPayment

	DeleteFunc func(ctx context.Context, workspaceID, id string) error
}

func NewMockBillPaymentRepository() *MockBillPaymentRepository {
	return &MockBillPaymentRepository{payments: make(map[string]*domain.BillPayment)}
}

func (m *MockBillPaymentRepository) Create(ctx context.Context, workspaceID string, payment *domain.BillPayment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments[scoped(workspaceID, payment.ID)] = payment
	return nil
}

func (m *MockBillPaymentRepository) GetByID(ctx context.Context, workspaceID, id string) (*domain.BillPayment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.payments[scoped(workspaceID, id)]; ok {
		return p, nil
	}
	return nil, domain.ErrPaymentNotFound
}

func (m *MockBillPaymentRepository) Update(ctx context.Context, workspaceID string, payment *domain.BillPayment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := scoped(workspaceID, payment.ID)
	if _, ok := m.payments[key]; !ok {
		return domain.ErrPaymentNotFound
	}
	m.payments[key] = payment
	return nil
}

func (m *MockBillPaymentRepository) Delete(ctx context.Context, workspaceID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, workspaceID, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.payments, scoped(workspaceID, id))
	return nil
}

func (m *MockBillPaymentRepository) FindByBill(ctx context.Context, workspaceID, billID string, key domain.StatementKey) ([]*domain.BillPayment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.BillPayment
	for _, p := range m.payments {
		if p.WorkspaceID == workspaceID && p.BillID == billID && p.Key() == key {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m *MockBillPaymentRepository) ListByPeriod(ctx context.Context, workspaceID string, key domain.StatementKey) ([]*domain.BillPayment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.BillPayment
	for _, p := range m.payments {
		if p.WorkspaceID == workspaceID && p.Key() == key {
			result = append(result, p)
		}
	}
	return result, nil
}

// MockWorkspaceRepository is an in-memory WorkspaceRepository.
type MockWorkspaceRepository struct {
	IDs      []string
	ListErr  error
	ListFunc func(ctx context.Context) ([]string, error)
}

func (m *MockWorkspaceRepository) ListIDs(ctx context.Context) ([]string, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return m.IDs, m.ListErr
}

// MockAuditSink records every event it sees.
type MockAuditSink struct {
	mu     sync.Mutex
	Events []*domain.AuditEvent
}

func (m *MockAuditSink) Record(ctx context.Context, event *domain.AuditEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
}

// Actions returns the recorded action names in order.
func (m *MockAuditSink) Actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	actions := make([]string, len(m.Events))
	for i, e := range m.Events {
		actions[i] = e.Action
	}
	return actions
}

// FixedClock always returns the same instant.
type FixedClock struct {
	Instant time.Time
}

func (c FixedClock) Now() time.Time {
	return c.Instant
}

// SequenceIDGenerator generates id-1, id-2, ...
type SequenceIDGenerator struct {
	mu sync.Mutex
	n  int
}

func (g *SequenceIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

// MockCache is an in-memory Cache without TTL expiry.
type MockCache struct {
	mu      sync.RWMutex
	values  map[string]string
	Sets    int
	Deletes int
}

func NewMockCache() *MockCache {
	return &MockCache{values: make(map[string]string)}
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[key], nil
}

func (m *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	m.Sets++
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	m.Deletes++
	return nil
}
