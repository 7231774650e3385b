package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/upark/upark-api/internal/auth"
	"github.com/upark/upark-api/internal/constants"
	"github.com/upark/upark-api/internal/events"
	"github.com/upark/upark-api/internal/models"
	"github.com/upark/upark-api/internal/repository"
	"github.com/upark/upark-api/internal/utils"
)

func newTestHasher() *auth.PasswordHasher {
	return auth.NewPasswordHasher(bcrypt.MinCost)
}

// fakeUserStore is an in-memory users table shared by the user and reset fakes.
type fakeUserStore struct {
	mu     sync.Mutex
	users  map[int64]*models.User
	nextID int64
	calls  int
	err    error
	now    func() time.Time
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users:  make(map[int64]*models.User),
		nextID: 1,
		now:    time.Now,
	}
}

func (s *fakeUserStore) byEmail(email string) *models.User {
	for _, u := range s.users {
		if u.Email == email {
			return u
		}
	}
	return nil
}

// seed inserts a user directly, bypassing the call counter.
func (s *fakeUserStore) seed(u *models.User) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.ID = s.nextID
	s.nextID++
	s.users[u.ID] = u
	return u
}

type fakeUserRepository struct {
	*fakeUserStore
}

func (r fakeUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.err != nil {
		return r.err
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return utils.NewDuplicateError(constants.ColumnEmail, constants.MsgEmailAlreadyRegistered)
		}
		if u.Username == user.Username {
			return utils.NewDuplicateError(constants.ColumnUsername, constants.MsgUsernameTaken)
		}
	}
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = r.now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r fakeUserRepository) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, utils.NewNotFoundError("User")
	}
	c := *u
	return &c, nil
}

func (r fakeUserRepository) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Username == username {
			c := *u
			return &c, nil
		}
	}
	return nil, utils.NewNotFoundError("User")
}

func (r fakeUserRepository) List(_ context.Context) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	users := make([]*models.User, 0, len(r.users))
	for id := int64(1); id < r.nextID; id++ {
		if u, ok := r.users[id]; ok {
			c := *u
			users = append(users, &c)
		}
	}
	return users, nil
}

func (r fakeUserRepository) Update(_ context.Context, id int64, update *models.UserUpdate) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	u, ok := r.users[id]
	if !ok {
		return nil, utils.NewNotFoundError("User")
	}
	u.FirstName, u.LastName, u.Phone = update.FirstName, update.LastName, update.Phone
	if update.Email != nil {
		u.Email = *update.Email
	}
	u.IsManager = update.IsManager
	u.UpdatedAt = r.now()
	c := *u
	return &c, nil
}

func (r fakeUserRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if _, ok := r.users[id]; !ok {
		return utils.NewNotFoundError("User")
	}
	delete(r.users, id)
	return nil
}

func (r fakeUserRepository) UpdatePasswordByEmail(_ context.Context, email, passwordHash string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.err != nil {
		return 0, r.err
	}
	u := r.byEmail(email)
	if u == nil {
		return 0, utils.NewNotFoundError("User")
	}
	u.PasswordHash = passwordHash
	return u.ID, nil
}

type fakeResetRepository struct {
	*fakeUserStore
}

func (r fakeResetRepository) FindUserIDByEmail(_ context.Context, email string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.err != nil {
		return 0, r.err
	}
	u := r.byEmail(email)
	if u == nil {
		return 0, utils.New(utils.ErrNotFound, 404, constants.MsgEmailNotFound)
	}
	return u.ID, nil
}

func (r fakeResetRepository) SetPending(_ context.Context, userID int64, pending *models.PendingReset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	u, ok := r.users[userID]
	if !ok {
		return utils.NewNotFoundError("User")
	}
	p := *pending
	u.PendingReset = &p
	return nil
}

func (r fakeResetRepository) Confirm(_ context.Context, token string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.err != nil {
		return 0, r.err
	}
	for _, u := range r.users {
		p := u.PendingReset
		if p != nil && p.Token == token && !p.Expired(r.now()) {
			u.PasswordHash = p.PasswordHash
			u.PendingReset = nil
			return u.ID, nil
		}
	}
	return 0, repository.ErrResetTokenInvalid
}

type fakeMailer struct {
	sent []*EmailMessage
	err  error
}

func (m *fakeMailer) Send(_ context.Context, msg *EmailMessage) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type fakePublisher struct {
	events []events.Event
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, event events.Event) error {
	p.events = append(p.events, event)
	return p.err
}

func (p *fakePublisher) Close() error { return nil }

func (p *fakePublisher) types() []string {
	types := make([]string, len(p.events))
	for i, e := range p.events {
		types[i] = e.Type
	}
	return types
}

var errStoreDown = errors.New("connection reset by peer")
