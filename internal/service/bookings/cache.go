package bookings

import (
	"sync"

	"github.com/lumea-app/SBM-ClientCore/internal/domain"
)

// listCache кэш списков бронирований в памяти процесса.
// Состояние занятости принадлежит серверу, поэтому кэш никогда не
// правится точечно - успешный переход инвалидирует список целиком,
// и следующий запрос перечитывает его с сервера.
type listCache struct {
	mu      sync.Mutex
	entries map[string][]*domain.Booking
}

func newListCache() *listCache {
	return &listCache{entries: make(map[string][]*domain.Booking)}
}

// get возвращает закэшированный список; второй результат false при промахе
func (c *listCache) get(key string) ([]*domain.Booking, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	list, ok := c.entries[key]
	return list, ok
}

// put сохраняет список в кэш
func (c *listCache) put(key string, list []*domain.Booking) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = list
}

// invalidate сбрасывает записи по ключам
func (c *listCache) invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range keys {
		delete(c.entries, key)
	}
}

// customerKey ключ кэша истории бронирований пользователя
func customerKey(customerID string) string {
	return "customer:" + customerID
}

// salonKey ключ кэша бронирований салона
func salonKey(salonID string) string {
	return "salon:" + salonID
}
