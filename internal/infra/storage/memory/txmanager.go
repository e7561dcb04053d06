package memory

import (
	"context"
	"sync"
)

type txKey struct{}

// TxManager сериализует транзакции хранилища в памяти одним мьютексом.
// Откат не поддерживается: изменения, сделанные до ошибки, остаются.
// Сценарии usecase-ов выполняют запись последним шагом, поэтому это не нарушает их инварианты
type TxManager struct {
	mu sync.Mutex
}

// NewTxManager создает менеджер транзакций в памяти
func NewTxManager() *TxManager {
	return &TxManager{}
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return fn(context.WithValue(ctx, txKey{}, struct{}{}))
}
