package events

import (
	"sync"

	"github.com/google/uuid"
)

// Handler обработчик события. Не должен блокироваться: вызывается синхронно из Publish
type Handler func(Event)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type subscription struct {
	userID  uuid.UUID
	all     bool
	handler Handler
}

// Broker реестр подписчиков ленты изменений
type Broker struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[uint64]subscription
	logger Logger
}

// NewBroker создает брокер событий
func NewBroker(logger Logger) *Broker {
	return &Broker{
		subs:   make(map[uint64]subscription),
		logger: logger,
	}
}

// Subscribe подписывает обработчик на события пользователя
// Возвращает функцию отписки; повторный вызов безопасен
func (b *Broker) Subscribe(userID uuid.UUID, handler Handler) func() {
	return b.add(subscription{userID: userID, handler: handler})
}

// SubscribeAll подписывает обработчик на события всех пользователей
func (b *Broker) SubscribeAll(handler Handler) func() {
	return b.add(subscription{all: true, handler: handler})
}

// Publish доставляет событие подписчикам. Паника в обработчике логируется
// и не мешает остальным подписчикам
func (b *Broker) Publish(event Event) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subs))
	for _, sub := range b.subs {
		if sub.all || sub.userID == event.UserID {
			handlers = append(handlers, sub.handler)
		}
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		b.deliver(h, event)
	}
}

// SubscribersCount количество активных подписок
func (b *Broker) SubscribersCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

func (b *Broker) add(sub subscription) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[id] = sub
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
}

func (b *Broker) deliver(h Handler, event Event) {
	defer func() {
		if r := recover(); r != nil && b.logger != nil {
			b.logger.Error("events.Publish: handler panicked on %s for user=%s: %v", event.Type, event.UserID, r)
		}
	}()
	h(event)
}
