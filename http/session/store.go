package session

import (
	"encoding/gob"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/boj/redistore"
	"github.com/go-redis/redis/v8"
	gorilla "github.com/gorilla/sessions"
	"github.com/xy-planning-network/meadowlark"
)

const (
	DefaultSessionName = "meadowlark-session"

	defaultMaxAge = 86400 // 1 day
	redisPoolSize = 10
)

// The SessionStorer defines methods for interacting with a Session for the given *http.Request.
type SessionStorer interface {
	GetSession(r *http.Request) (Session, error)
}

// A Service wraps a gorilla.Store to manage constructing a new one
// and accessing the sessions contained in it.
//
// Service implements SessionStorer.
type Service struct {
	ak []byte
	ek []byte

	// sn is the name sessions are stored under and the name of the cookie.
	sn string

	env    meadowlark.Environment
	maxAge int
	store  gorilla.Store
}

// A Config provides the values required for a Service.
type Config struct {
	Env meadowlark.Environment

	// The name sessions are stored under.
	// Also used as the name of the cookie.
	// Defaults to DefaultSessionName.
	SessionName string

	// Hex-encoded key authenticating session values with HMAC.
	AuthKey string

	// Hex-encoded key encrypting session values with AES.
	// Must decode to 16, 24 or 32 bytes.
	EncryptKey string
}

func (c Config) validate() error {
	if err := c.Env.Valid(); err != nil {
		return err
	}

	if c.AuthKey == "" {
		return fmt.Errorf("%w: AuthKey cannot be empty", meadowlark.ErrBadConfig)
	}

	return nil
}

// NewStoreService initiates a data store for user web sessions
// with the provided config.
// If no backing storage is provided through a functional option -
// like WithRedis - NewStoreService stores sessions in cookies.
func NewStoreService(cfg Config, opts ...ServiceOpt) (Service, error) {
	var err error
	gob.Register(Flash{})

	if err := cfg.validate(); err != nil {
		return Service{}, err
	}

	s := Service{
		env:    cfg.Env,
		maxAge: defaultMaxAge,
		sn:     cfg.SessionName,
	}
	if s.sn == "" {
		s.sn = DefaultSessionName
	}

	s.ak, err = hex.DecodeString(cfg.AuthKey)
	if err != nil {
		return Service{}, fmt.Errorf("%w: authentication key is not valid: %s", meadowlark.ErrBadConfig, err)
	}

	s.ek, err = hex.DecodeString(cfg.EncryptKey)
	if err != nil {
		return Service{}, fmt.Errorf("%w: encryption key is not valid: %s", meadowlark.ErrBadConfig, err)
	}

	switch len(s.ek) {
	case 16, 24, 32:
	default:
		return Service{}, fmt.Errorf("%w: encryption key must be 16, 24 or 32 bytes, got %d", meadowlark.ErrBadConfig, len(s.ek))
	}

	for _, opt := range opts {
		if err := opt(&s); err != nil {
			return Service{}, fmt.Errorf("%w: %s", meadowlark.ErrBadConfig, err)
		}
	}

	if s.store == nil {
		if err := WithCookie()(&s); err != nil {
			return Service{}, fmt.Errorf("%w: %s", meadowlark.ErrBadConfig, err)
		}
	}

	return s, nil
}

// GetSession retrieves the Session for the *http.Request,
// or creates a brand new one.
func (s Service) GetSession(r *http.Request) (Session, error) {
	session, err := s.store.Get(r, s.sn)
	return Session{s: session}, err
}

// A ServiceOpt configures the provided *Service,
// returning an error if unable to.
type ServiceOpt func(*Service) error

// WithCookie configures the Service to back session storage with cookies.
func WithCookie() ServiceOpt {
	return func(s *Service) error {
		c := gorilla.NewCookieStore(s.ak, s.ek)
		c.Options.Secure = s.env.IsProduction()
		c.Options.HttpOnly = true
		c.MaxAge(s.maxAge)
		s.store = c
		return nil
	}
}

// WithMaxAge sets the time-to-live of a session.
//
// Call before other options so this value is available.
//
// Otherwise, the Service uses defaultMaxAge.
func WithMaxAge(secs int) ServiceOpt {
	return func(s *Service) error {
		s.maxAge = secs
		return nil
	}
}

// WithRedis configures the Service to back session storage with the Redis server opts points to.
func WithRedis(opts *redis.Options) ServiceOpt {
	return func(s *Service) error {
		if opts == nil {
			return errors.New("no Redis options")
		}

		r, err := redistore.NewRediStoreWithDB(redisPoolSize, opts.Network, opts.Addr, opts.Password, strconv.Itoa(opts.DB), s.ak, s.ek)
		if err != nil {
			return fmt.Errorf("failed initializing Redis: %s", err)
		}

		r.Options.Secure = s.env.IsProduction()
		r.Options.HttpOnly = true
		r.SetMaxAge(s.maxAge)
		s.store = r
		return nil
	}
}

// A StubStore is a SessionStorer handing out the same in-memory session to every request.
// Saving is a no-op.
type StubStore struct {
	s *gorilla.Session
}

// NewStub constructs a *StubStore.
// If userID is non-zero, it is registered in the session.
func NewStub(userID uint) *StubStore {
	s := new(StubStore)
	s.s = gorilla.NewSession(s, DefaultSessionName)
	s.s.Options = &gorilla.Options{Path: "/"}
	if userID != 0 {
		s.s.Values[userSessionKey] = userID
	}

	return s
}

func (s *StubStore) GetSession(r *http.Request) (Session, error) { return Session{s.s}, nil }

func (s *StubStore) Get(r *http.Request, name string) (*gorilla.Session, error) { return s.s, nil }
func (s *StubStore) New(r *http.Request, name string) (*gorilla.Session, error) { return s.s, nil }
func (s *StubStore) Save(r *http.Request, w http.ResponseWriter, sess *gorilla.Session) error {
	return nil
}
