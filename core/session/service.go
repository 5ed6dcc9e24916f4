// Package session holds the authenticated-identity state of the running
// client: anonymous -> authenticating -> authenticated -> anonymous.
package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/eleveia/eleve-go/core"
	"github.com/eleveia/eleve-go/restclient"
	"github.com/eleveia/eleve-go/storage/credstore"
)

type State int

const (
	StateAnonymous State = iota
	StateAuthenticating
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

type Service struct {
	client   *restclient.Client
	store    credstore.Store
	validate *core.Validator
	log      core.Logger

	mu          sync.Mutex
	state       State
	user        *User
	lastErr     error
	watchers    map[int]func(State)
	nextWatcher int
}

// NewService restores the session from durable storage: authenticated iff a
// persisted token and a cached user both exist. No network call is made.
func NewService(client *restclient.Client, store credstore.Store, validate *core.Validator, log core.Logger) *Service {
	svc := &Service{
		client:   client,
		store:    store,
		validate: validate,
		log:      log,
		state:    StateAnonymous,
		watchers: make(map[int]func(State)),
	}
	if _, ok := store.Token(); ok {
		if raw, ok := store.User(); ok {
			var usr User
			if err := json.Unmarshal(raw, &usr); err == nil {
				svc.user = &usr
				svc.state = StateAuthenticated
			}
		}
	}
	return svc
}

// Login authenticates against /auth/login/. On success the token and the
// user are persisted; on failure nothing is persisted and the session goes
// back to anonymous with the error recorded.
func (svc *Service) Login(ctx context.Context, creds Credentials) error {
	if err := svc.validate.Check(creds); err != nil {
		svc.recordErr(err)
		return err
	}
	svc.setState(StateAuthenticating, nil, nil)

	var resp authResponse
	if err := svc.client.Post(ctx, "/auth/login/", creds, &resp); err != nil {
		svc.setState(StateAnonymous, nil, err)
		return err
	}
	svc.persist(resp.Token, &resp.User)
	svc.setState(StateAuthenticated, &resp.User, nil)
	return nil
}

// Register creates an account via /auth/registro/; same success/failure
// contract as Login.
func (svc *Service) Register(ctx context.Context, data RegisterData) error {
	if err := svc.validate.Check(data); err != nil {
		svc.recordErr(err)
		return err
	}
	svc.setState(StateAuthenticating, nil, nil)

	var resp authResponse
	if err := svc.client.Post(ctx, "/auth/registro/", data, &resp); err != nil {
		svc.setState(StateAnonymous, nil, err)
		return err
	}
	svc.persist(resp.Token, &resp.User)
	svc.setState(StateAuthenticated, &resp.User, nil)
	return nil
}

// Logout tells the server, then clears local state unconditionally: the
// user ends up logged out locally whether or not the server was reachable.
func (svc *Service) Logout(ctx context.Context) {
	if err := svc.client.Post(ctx, "/auth/logout/", nil, nil); err != nil {
		svc.log.Warn("session: server-side logout failed, clearing locally anyway", map[string]interface{}{"error": err.Error()})
	}
	if err := svc.store.Clear(); err != nil {
		svc.log.Error("session: clearing credentials", map[string]interface{}{"error": err.Error()})
	}
	svc.setState(StateAnonymous, nil, nil)
}

// RefreshProfile re-fetches /auth/perfil/ and replaces the user. A failure
// means the persisted token is stale: the session drops to anonymous.
func (svc *Service) RefreshProfile(ctx context.Context) error {
	var usr User
	if err := svc.client.Get(ctx, "/auth/perfil/", nil, &usr); err != nil {
		if err := svc.store.Clear(); err != nil {
			svc.log.Error("session: clearing credentials", map[string]interface{}{"error": err.Error()})
		}
		svc.setState(StateAnonymous, nil, err)
		return err
	}
	svc.cacheUser(&usr)
	svc.setState(StateAuthenticated, &usr, nil)
	return nil
}

// UpdateProfile PUTs /auth/atualizar-perfil/ and re-caches the returned user.
func (svc *Service) UpdateProfile(ctx context.Context, data UpdateProfileData) error {
	if err := svc.validate.Check(data); err != nil {
		svc.recordErr(err)
		return err
	}
	var usr User
	if err := svc.client.Put(ctx, "/auth/atualizar-perfil/", data, &usr); err != nil {
		svc.recordErr(err)
		return err
	}
	svc.cacheUser(&usr)
	svc.setState(StateAuthenticated, &usr, nil)
	return nil
}

func (svc *Service) State() State {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.state
}

func (svc *Service) User() *User {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.user
}

func (svc *Service) IsAuthenticated() bool {
	return svc.State() == StateAuthenticated
}

// Err returns the last recorded failure, cleared on the next transition.
func (svc *Service) Err() error {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.lastErr
}

func (svc *Service) ClearErr() {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.lastErr = nil
}

// Watch registers a callback notified on every state transition; the
// returned func unregisters it.
func (svc *Service) Watch(fn func(State)) func() {
	svc.mu.Lock()
	id := svc.nextWatcher
	svc.nextWatcher++
	svc.watchers[id] = fn
	svc.mu.Unlock()
	return func() {
		svc.mu.Lock()
		defer svc.mu.Unlock()
		delete(svc.watchers, id)
	}
}

func (svc *Service) persist(token string, usr *User) {
	if err := svc.store.SetToken(token); err != nil {
		svc.log.Error("session: persisting token", map[string]interface{}{"error": err.Error()})
	}
	svc.cacheUser(usr)
}

func (svc *Service) cacheUser(usr *User) {
	raw, err := json.Marshal(usr)
	if err == nil {
		err = svc.store.SetUser(raw)
	}
	if err != nil {
		svc.log.Error("session: caching user profile", map[string]interface{}{"error": err.Error()})
	}
}

func (svc *Service) setState(state State, usr *User, err error) {
	svc.mu.Lock()
	svc.state = state
	svc.lastErr = err
	if state != StateAuthenticating {
		svc.user = usr
	}
	fns := make([]func(State), 0, len(svc.watchers))
	for _, fn := range svc.watchers {
		fns = append(fns, fn)
	}
	svc.mu.Unlock()
	for _, fn := range fns {
		fn(state)
	}
}

func (svc *Service) recordErr(err error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.lastErr = err
}
