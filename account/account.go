/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package account

import (
	"context"
	"errors"
	"sync"
	"time"

	"dirpx.dev/faults"
	"dirpx.dev/faults/authn"
	"dirpx.dev/faults/cache/rediscache"
	"dirpx.dev/faults/credential"
	"dirpx.dev/faults/kind"
	"dirpx.dev/faults/secret"
	"dirpx.dev/faults/store/pgstore"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AdminScope is granted to the usernames passed to WithAdmins.
const AdminScope = "admin"

// Input errors. They describe a bad request, not a failure.
var (
	ErrInvalidUsername = errors.New("account: username must be 3-32 letters or digits")
	ErrUsernameTaken   = errors.New("account: username is taken")
)

// Credentials persists credentials.
type Credentials interface {
	Create(ctx context.Context, c credential.Credential) error
	ByUsername(ctx context.Context, username string) (credential.Credential, error)
}

// Sessions caches live sessions.
type Sessions interface {
	Put(ctx context.Context, s rediscache.Session) error
	Get(ctx context.Context, id uuid.UUID) (rediscache.Session, error)
	Drop(ctx context.Context, id uuid.UUID) error
}

// Tokens issues access tokens.
type Tokens interface {
	Issue(userID, sessionID uuid.UUID, username string, scopes []string) (string, error)
}

// Login is the result of a successful login.
type Login struct {
	Token     string    `json:"token"`
	SessionID uuid.UUID `json:"session_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Option configures a Service.
type Option func(*Service)

// WithAdmins grants AdminScope to the given usernames at login.
func WithAdmins(usernames ...string) Option {
	return func(s *Service) {
		for _, u := range usernames {
			s.admins[u] = true
		}
	}
}

// WithHasher replaces the default bcrypt hasher.
func WithHasher(h credential.Hasher) Option {
	return func(s *Service) { s.hasher = h }
}

// WithLogger sets the logger for account events.
func WithLogger(l *zerolog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// Service implements registration and session handling.
type Service struct {
	creds    Credentials
	sessions Sessions
	tokens   Tokens
	ttl      time.Duration

	hasher   credential.Hasher
	admins   map[string]bool
	log      *zerolog.Logger
	validate *validator.Validate

	dummyOnce sync.Once
	dummy     string
}

// New returns a Service. Sessions live for ttl.
func New(creds Credentials, sessions Sessions, tokens Tokens, ttl time.Duration, opts ...Option) *Service {
	nop := zerolog.Nop()
	s := &Service{
		creds:    creds,
		sessions: sessions,
		tokens:   tokens,
		ttl:      ttl,
		admins:   map[string]bool{},
		log:      &nop,
		validate: validator.New(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Register creates an account.
func (s *Service) Register(ctx context.Context, username string, password secret.Value) (credential.Credential, error) {
	if err := s.validate.Var(username, "required,alphanum,min=3,max=32"); err != nil {
		return credential.Credential{}, ErrInvalidUsername
	}

	_, err := s.creds.ByUsername(ctx, username)
	switch {
	case err == nil:
		return credential.Credential{}, ErrUsernameTaken
	case !faults.Is(err, kind.NotFound):
		return credential.Credential{}, err
	}

	c, err := s.hasher.New(username, password)
	if err != nil {
		return credential.Credential{}, err
	}
	if err := s.creds.Create(ctx, c); err != nil {
		// Lost a race with a concurrent registration of the same name.
		if f, ok := faults.From(err); ok && faults.ReasonOf(f) == pgstore.UniqueViolation {
			return credential.Credential{}, ErrUsernameTaken
		}
		return credential.Credential{}, err
	}
	s.log.Info().Str("username", username).Str("user_id", c.ID.String()).Msg("account registered")
	return c, nil
}

// Login checks the password and opens a session.
func (s *Service) Login(ctx context.Context, username string, password secret.Value) (Login, error) {
	c, err := s.creds.ByUsername(ctx, username)
	if err != nil {
		if faults.Is(err, kind.NotFound) {
			// Spend the same bcrypt time as for a known user.
			_ = credential.Verify(s.dummyHash(), password)
			return Login{}, faults.Unauthorized{}
		}
		return Login{}, err
	}
	if err := credential.Verify(c.Hash, password); err != nil {
		return Login{}, err
	}

	var scopes []string
	if s.admins[c.Username] {
		scopes = []string{AdminScope}
	}
	sess := rediscache.Session{
		ID:        uuid.New(),
		UserID:    c.ID,
		Username:  c.Username,
		Scopes:    scopes,
		ExpiresAt: time.Now().UTC().Add(s.ttl),
	}
	if err := s.sessions.Put(ctx, sess); err != nil {
		return Login{}, err
	}
	token, err := s.tokens.Issue(c.ID, sess.ID, c.Username, scopes)
	if err != nil {
		return Login{}, err
	}
	s.log.Info().Str("username", c.Username).Str("session_id", sess.ID.String()).Msg("login")
	return Login{Token: token, SessionID: sess.ID, ExpiresAt: sess.ExpiresAt}, nil
}

// Session returns the live session behind claims. A dropped or expired
// session, or one that belongs to another user, is Unauthorized.
func (s *Service) Session(ctx context.Context, claims *authn.Claims) (rediscache.Session, error) {
	id, userID, err := ids(claims)
	if err != nil {
		return rediscache.Session{}, err
	}
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		if faults.Is(err, kind.NotFound) {
			return rediscache.Session{}, faults.Unauthorized{}
		}
		return rediscache.Session{}, err
	}
	if sess.UserID != userID {
		return rediscache.Session{}, faults.Unauthorized{}
	}
	return sess, nil
}

// Live is an authn.Check that rejects tokens whose session is gone.
func (s *Service) Live(ctx context.Context, claims *authn.Claims) error {
	_, err := s.Session(ctx, claims)
	return err
}

// Logout drops the session behind claims. Logging out twice is not an error.
func (s *Service) Logout(ctx context.Context, claims *authn.Claims) error {
	id, _, err := ids(claims)
	if err != nil {
		return err
	}
	if err := s.sessions.Drop(ctx, id); err != nil && !faults.Is(err, kind.NotFound) {
		return err
	}
	s.log.Info().Str("username", claims.Username).Str("session_id", id.String()).Msg("logout")
	return nil
}

func ids(claims *authn.Claims) (session, user uuid.UUID, err error) {
	if claims == nil {
		return uuid.Nil, uuid.Nil, faults.Unauthorized{}
	}
	if session, err = claims.Session(); err != nil {
		return uuid.Nil, uuid.Nil, faults.Unauthorized{}
	}
	if user, err = claims.UserID(); err != nil {
		return uuid.Nil, uuid.Nil, faults.Unauthorized{}
	}
	return session, user, nil
}

// fallbackHash is a cost 10 bcrypt hash of a throwaway password, used when
// the configured hasher cannot produce one.
const fallbackHash = "$2b$10$abcdefghijklmnopqrstuuMV2fBv2BNt7/l6QBnrm8Xn2.ZuEsCgC"

func (s *Service) dummyHash() string {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash(secret.New(uuid.NewString(), secret.Secured))
		if err != nil {
			s.log.Error().Err(err).Msg("dummy hash failed, using fallback")
			h = fallbackHash
		}
		s.dummy = h
	})
	return s.dummy
}
