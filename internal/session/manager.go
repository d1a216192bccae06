package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/quizdesk/quizdesk/internal/config"
	"github.com/quizdesk/quizdesk/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Hash field names of a session in Redis.
const (
	fieldUserID          = "user_id"
	fieldRole            = "role"
	fieldUsername        = "username"
	fieldCSRFToken       = "csrf_token"
	fieldActiveAttemptID = "active_attempt_id"
	fieldActiveQuizID    = "active_quiz_id"
	fieldUnlockedQuizIDs = "unlocked_quiz_ids"
	fieldFlashError      = "flash_error"
	fieldFlashSuccess    = "flash_success"
)

// ErrNoSession is returned when a cookie token does not map to a live
// session hash (expired, logged out, or never existed).
var ErrNoSession = errors.New("no session")

// Manager stores sessions as Redis hashes keyed by a random id, with an
// idle TTL refreshed on every load.
type Manager struct {
	rdb    *redis.Client
	secret []byte
	idle   time.Duration
	log    zerolog.Logger
}

// NewManager creates a session Manager.
func NewManager(rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *Manager {
	return &Manager{
		rdb:    rdb,
		secret: []byte(cfg.SessionSecret),
		idle:   cfg.SessionIdle,
		log:    log.With().Str("component", "session").Logger(),
	}
}

// Session is the per-request view of one server-side session. It is loaded
// once by the session middleware and passed explicitly to handlers; writes
// go straight to Redis.
type Session struct {
	ID   string
	mgr  *Manager
	data map[string]string
}

func (m *Manager) key(sessionID string) string {
	return "session:" + sessionID
}

// Start creates a fresh session for a signed-in user and returns it with
// the signed cookie token.
func (m *Manager) Start(ctx context.Context, user *model.User) (*Session, string, error) {
	sid := uuid.New().String()

	fields := map[string]string{
		fieldUserID:    strconv.Itoa(user.ID),
		fieldRole:      string(user.Role),
		fieldUsername:  user.Username,
		fieldCSRFToken: uuid.New().String(),
	}

	pipe := m.rdb.TxPipeline()
	pipe.HSet(ctx, m.key(sid), fields)
	pipe.Expire(ctx, m.key(sid), m.idle)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, "", fmt.Errorf("store session: %w", err)
	}

	token, err := EncodeToken(m.secret, sid)
	if err != nil {
		return nil, "", fmt.Errorf("sign session token: %w", err)
	}

	data := make(map[string]string, len(fields))
	for k, v := range fields {
		data[k] = v
	}

	return &Session{ID: sid, mgr: m, data: data}, token, nil
}

// Load resolves a cookie token into a live session and refreshes its idle
// TTL. Returns ErrNoSession when the token is invalid or the session hash
// has expired.
func (m *Manager) Load(ctx context.Context, token string) (*Session, error) {
	sid, err := DecodeToken(m.secret, token)
	if err != nil {
		return nil, ErrNoSession
	}

	data, err := m.rdb.HGetAll(ctx, m.key(sid)).Result()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrNoSession
	}

	if err := m.rdb.Expire(ctx, m.key(sid), m.idle).Err(); err != nil {
		m.log.Warn().Err(err).Msg("Session TTL refresh failed")
	}

	return &Session{ID: sid, mgr: m, data: data}, nil
}

// Destroy removes the session hash. The cookie token becomes worthless
// immediately.
func (m *Manager) Destroy(ctx context.Context, s *Session) error {
	return m.rdb.Del(ctx, m.key(s.ID)).Err()
}

func (s *Session) set(ctx context.Context, fields map[string]string) error {
	if err := s.mgr.rdb.HSet(ctx, s.mgr.key(s.ID), fields).Err(); err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	for k, v := range fields {
		s.data[k] = v
	}
	return nil
}

func (s *Session) remove(ctx context.Context, fields ...string) error {
	if err := s.mgr.rdb.HDel(ctx, s.mgr.key(s.ID), fields...).Err(); err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	for _, f := range fields {
		delete(s.data, f)
	}
	return nil
}

func (s *Session) intField(name string) (int, bool) {
	raw, ok := s.data[name]
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// UserID returns the signed-in user's id, 0 when absent.
func (s *Session) UserID() int {
	id, _ := s.intField(fieldUserID)
	return id
}

// Role returns the signed-in user's role, "" when absent.
func (s *Session) Role() model.Role {
	return model.Role(s.data[fieldRole])
}

// Username returns the signed-in user's username.
func (s *Session) Username() string {
	return s.data[fieldUsername]
}

// CSRFToken returns the per-session anti-forgery token.
func (s *Session) CSRFToken() string {
	return s.data[fieldCSRFToken]
}

// ActiveAttempt returns the session's active-attempt pointer. ok is false
// when no pointer is held.
func (s *Session) ActiveAttempt() (attemptID, quizID int, ok bool) {
	attemptID, okA := s.intField(fieldActiveAttemptID)
	quizID, okQ := s.intField(fieldActiveQuizID)
	return attemptID, quizID, okA && okQ
}

// SetActiveAttempt points the session at the attempt being solved.
func (s *Session) SetActiveAttempt(ctx context.Context, attemptID, quizID int) error {
	return s.set(ctx, map[string]string{
		fieldActiveAttemptID: strconv.Itoa(attemptID),
		fieldActiveQuizID:    strconv.Itoa(quizID),
	})
}

// ClearActiveAttempt drops the active-attempt pointer.
func (s *Session) ClearActiveAttempt(ctx context.Context) error {
	return s.remove(ctx, fieldActiveAttemptID, fieldActiveQuizID)
}

// UnlockedQuizIDs returns the quiz ids the student has unlocked this
// session.
func (s *Session) UnlockedQuizIDs() map[int]struct{} {
	return ParseQuizIDSet(s.data[fieldUnlockedQuizIDs])
}

// HasUnlocked reports whether the quiz is in the session's unlocked set.
func (s *Session) HasUnlocked(quizID int) bool {
	_, ok := s.UnlockedQuizIDs()[quizID]
	return ok
}

// AddUnlockedQuiz grants session-scoped access to a non-public quiz.
func (s *Session) AddUnlockedQuiz(ctx context.Context, quizID int) error {
	set := s.UnlockedQuizIDs()
	set[quizID] = struct{}{}
	return s.set(ctx, map[string]string{fieldUnlockedQuizIDs: EncodeQuizIDSet(set)})
}

// FlashError stores a one-shot error message for the next rendered page.
func (s *Session) FlashError(ctx context.Context, msg string) error {
	return s.set(ctx, map[string]string{fieldFlashError: msg})
}

// FlashSuccess stores a one-shot success message for the next rendered page.
func (s *Session) FlashSuccess(ctx context.Context, msg string) error {
	return s.set(ctx, map[string]string{fieldFlashSuccess: msg})
}

// PopFlashes returns and clears the pending flash messages.
func (s *Session) PopFlashes(ctx context.Context) (errMsg, successMsg string) {
	errMsg = s.data[fieldFlashError]
	successMsg = s.data[fieldFlashSuccess]
	if errMsg != "" || successMsg != "" {
		if err := s.remove(ctx, fieldFlashError, fieldFlashSuccess); err != nil {
			s.mgr.log.Warn().Err(err).Msg("Flash clear failed")
		}
	}
	return errMsg, successMsg
}
