package session

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/lumea-app/SBM-ClientCore/internal/domain"
)

// Ключи долговременного хранилища. Совпадают с ключами мобильного клиента,
// очищаются только вместе.
const (
	KeyToken    = "auth_token"
	KeyIdentity = "auth_user"
)

// State состояние сессии
type State string

const (
	StateUninitialized State = "uninitialized"
	StateRestoring     State = "restoring"
	StateAuthenticated State = "authenticated"
	StateAnonymous     State = "anonymous"
)

// Session снимок текущей сессии, выдаваемый наружу только для чтения
type Session struct {
	State      State
	Credential *domain.Credential
}

// IsRestoring возвращает true, пока идёт восстановление сессии при старте
func (s Session) IsRestoring() bool {
	return s.State == StateUninitialized || s.State == StateRestoring
}

// IsAuthenticated возвращает true при наличии действующих учетных данных
func (s Session) IsAuthenticated() bool {
	return s.State == StateAuthenticated && s.Credential != nil
}

// Identity возвращает идентичность текущего пользователя или nil
func (s Session) Identity() *domain.Identity {
	if !s.IsAuthenticated() {
		return nil
	}
	return &s.Credential.Identity
}

// Store хранилище сессии. Единственный владелец учетных данных:
// никакой другой компонент не изменяет сессию напрямую.
type Store struct {
	mu         sync.RWMutex
	storage    Storage
	logger     Logger
	state      State
	credential *domain.Credential
}

// NewStore создает хранилище сессии в состоянии Uninitialized
func NewStore(storage Storage, logger Logger) *Store {
	return &Store{
		storage: storage,
		logger:  logger,
		state:   StateUninitialized,
	}
}

// Restore восстанавливает сессию из долговременного хранилища при старте.
// Любая ошибка чтения или разбора проглатывается с логированием - старт
// приложения не должен падать из-за битого локального состояния.
// После первого вызова повторное восстановление не выполняется.
func (s *Store) Restore() Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateUninitialized {
		// восстановление выполняется ровно один раз за запуск
		return s.snapshot()
	}
	s.state = StateRestoring

	token, tokenOK, err := s.storage.Get(KeyToken)
	if err != nil {
		s.logger.Warn("Restore: failed to read token: %v", err)
		s.state = StateAnonymous
		return s.snapshot()
	}

	identityRaw, identityOK, err := s.storage.Get(KeyIdentity)
	if err != nil {
		s.logger.Warn("Restore: failed to read identity: %v", err)
		s.state = StateAnonymous
		return s.snapshot()
	}

	if !tokenOK || !identityOK {
		s.logger.Info("Restore: no persisted session found")
		s.state = StateAnonymous
		return s.snapshot()
	}

	var identity domain.Identity
	if err := json.Unmarshal([]byte(identityRaw), &identity); err != nil {
		s.logger.Warn("Restore: failed to parse persisted identity: %v", err)
		s.state = StateAnonymous
		return s.snapshot()
	}

	if token == "" || !identity.Role.IsValid() {
		s.logger.Warn("Restore: persisted session is incomplete, dropping it")
		s.state = StateAnonymous
		return s.snapshot()
	}

	s.credential = &domain.Credential{Token: token, Identity: identity}
	s.state = StateAuthenticated
	s.logger.Info("Restore: session restored for user id=%s, role=%s", identity.ID, identity.Role)
	return s.snapshot()
}

// Login сохраняет учетные данные долговременно и затем обновляет память.
// Порядок записи: сначала идентичность, затем токен. Обрыв между записями
// оставляет хранилище без токена - следующий Restore увидит неполную пару
// и корректно начнёт с анонимной сессии.
func (s *Store) Login(credential domain.Credential) error {
	if credential.Token == "" || !credential.Identity.Role.IsValid() {
		return ErrInvalidCredential
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	identityRaw, err := json.Marshal(credential.Identity)
	if err != nil {
		return fmt.Errorf("%w: failed to serialize identity: %v", ErrInternal, err)
	}

	if err := s.storage.Set(KeyIdentity, string(identityRaw)); err != nil {
		return fmt.Errorf("%w: failed to persist identity: %v", ErrInternal, err)
	}
	if err := s.storage.Set(KeyToken, credential.Token); err != nil {
		return fmt.Errorf("%w: failed to persist token: %v", ErrInternal, err)
	}

	s.credential = &credential
	s.state = StateAuthenticated
	s.logger.Info("Login: session established for user id=%s, role=%s",
		credential.Identity.ID, credential.Identity.Role)
	return nil
}

// Logout очищает долговременное и оперативное состояние сессии.
// Идемпотентен: повторный вызов или вызов без сессии - успешный no-op.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearLocked("Logout")
}

// HandleUnauthorized выполняет неявный выход при ответе 401 от backend'а.
// Вызывается gateway-клиентом независимо от действий пользователя.
func (s *Store) HandleUnauthorized() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAuthenticated {
		return
	}
	s.logger.Warn("HandleUnauthorized: backend invalidated the credential, clearing session")
	_ = s.clearLocked("HandleUnauthorized")
}

// Current возвращает снимок текущей сессии
func (s *Store) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

// Token возвращает bearer-токен для исходящих запросов.
// Реализует TokenSource gateway-клиента.
func (s *Store) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state != StateAuthenticated || s.credential == nil {
		return "", false
	}
	return s.credential.Token, true
}

// clearLocked удаляет оба ключа и переводит сессию в Anonymous.
// Вызывается только под мьютексом.
func (s *Store) clearLocked(op string) error {
	if err := s.storage.Delete(KeyToken); err != nil {
		s.logger.Error("%s: failed to delete token: %v", op, err)
		return err
	}
	if err := s.storage.Delete(KeyIdentity); err != nil {
		s.logger.Error("%s: failed to delete identity: %v", op, err)
		return err
	}

	s.credential = nil
	s.state = StateAnonymous
	return nil
}

// snapshot возвращает копию состояния; вызывается под мьютексом
func (s *Store) snapshot() Session {
	if s.credential == nil {
		return Session{State: s.state}
	}
	credCopy := *s.credential
	return Session{State: s.state, Credential: &credCopy}
}
