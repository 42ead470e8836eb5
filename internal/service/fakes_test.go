package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"ai-search-be/internal/entity"
	"ai-search-be/internal/repository/contract"
	"ai-search-be/internal/repository/specification"
	"ai-search-be/internal/repository/unitofwork"
	"ai-search-be/pkg/events"

	"github.com/google/uuid"
)

// memStore backs the fake repositories. Specifications are interpreted by type.
type memStore struct {
	mu            sync.Mutex
	users         map[uuid.UUID]entity.User
	conversations map[uuid.UUID]entity.Conversation
	messages      []entity.Message
	lastActive    map[uuid.UUID]time.Time
	touched       map[uuid.UUID]time.Time
	commits       int
}

func newMemStore() *memStore {
	return &memStore{
		users:         map[uuid.UUID]entity.User{},
		conversations: map[uuid.UUID]entity.Conversation{},
		lastActive:    map[uuid.UUID]time.Time{},
		touched:       map[uuid.UUID]time.Time{},
	}
}

func (s *memStore) messagesOf(conversationId uuid.UUID) []entity.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.Message
	for _, m := range s.messages {
		if m.ConversationId == conversationId {
			out = append(out, m)
		}
	}
	return out
}

type fakeFactory struct {
	store *memStore
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUnitOfWork{store: f.store}
}

type fakeUnitOfWork struct {
	store *memStore
	inTx  bool
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error {
	if u.inTx {
		return errors.New("transaction already started")
	}
	u.inTx = true
	return nil
}

func (u *fakeUnitOfWork) Commit() error {
	if !u.inTx {
		return errors.New("no transaction to commit")
	}
	u.inTx = false
	u.store.mu.Lock()
	u.store.commits++
	u.store.mu.Unlock()
	return nil
}

func (u *fakeUnitOfWork) Rollback() error {
	if !u.inTx {
		return errors.New("no transaction to rollback")
	}
	u.inTx = false
	return nil
}

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository {
	return &fakeUserRepo{store: u.store}
}

func (u *fakeUnitOfWork) ConversationRepository() contract.ConversationRepository {
	return &fakeConversationRepo{store: u.store}
}

func (u *fakeUnitOfWork) MessageRepository() contract.MessageRepository {
	return &fakeMessageRepo{store: u.store}
}

type fakeUserRepo struct {
	store *memStore
}

func userMatches(u entity.User, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByHandle:
			if u.Handle != s.Handle {
				return false
			}
		case specification.ByID:
			if u.Id != s.ID {
				return false
			}
		}
	}
	return true
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.Handle == user.Handle {
			return errors.New("duplicate handle")
		}
	}
	r.store.users[user.Id] = *user
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.users[user.Id] = *user
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.users, id)
	return nil
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	all, _ := r.FindAll(ctx, specs...)
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.User
	for _, u := range r.store.users {
		if userMatches(u, specs) {
			copied := u
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func (r *fakeUserRepo) TouchLastActive(ctx context.Context, id uuid.UUID, at time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.lastActive[id] = at
	return nil
}

type fakeConversationRepo struct {
	store *memStore
}

func conversationMatches(c entity.Conversation, specs []specification.Specification) bool {
	if c.IsDeleted {
		return false
	}
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if c.Id != s.ID {
				return false
			}
		case specification.UserOwnedBy:
			if c.UserId != s.UserID {
				return false
			}
		case specification.IsActive:
			if !c.IsActive {
				return false
			}
		case specification.IsFavorite:
			if c.IsFavorite != s.Value {
				return false
			}
		case specification.TitleContains:
			term := strings.ToLower(strings.TrimSpace(s.Term))
			if term != "" && !strings.Contains(strings.ToLower(c.Title), term) {
				return false
			}
		}
	}
	return true
}

func (r *fakeConversationRepo) Create(ctx context.Context, conversation *entity.Conversation) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.conversations[conversation.Id] = *conversation
	return nil
}

func (r *fakeConversationRepo) Update(ctx context.Context, conversation *entity.Conversation) error {
	return r.Create(ctx, conversation)
}

func (r *fakeConversationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c := r.store.conversations[id]
	now := time.Now()
	c.IsDeleted = true
	c.DeletedAt = &now
	r.store.conversations[id] = c
	return nil
}

func (r *fakeConversationRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Conversation, error) {
	all, _ := r.FindAll(ctx, specs...)
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r *fakeConversationRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Conversation, error) {
	r.store.mu.Lock()
	var out []*entity.Conversation
	for _, c := range r.store.conversations {
		if conversationMatches(c, specs) {
			copied := c
			out = append(out, &copied)
		}
	}
	r.store.mu.Unlock()

	// newest first unless asked otherwise
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	for _, spec := range specs {
		if p, ok := spec.(specification.Pagination); ok {
			if p.Offset >= len(out) {
				return nil, nil
			}
			end := p.Offset + p.Limit
			if end > len(out) {
				end = len(out)
			}
			out = out[p.Offset:end]
		}
	}
	return out, nil
}

func (r *fakeConversationRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func (r *fakeConversationRepo) DeactivateAllByUserId(ctx context.Context, userId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, c := range r.store.conversations {
		if c.UserId == userId {
			c.IsActive = false
			r.store.conversations[id] = c
		}
	}
	return nil
}

func (r *fakeConversationRepo) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.touched[id] = at
	return nil
}

type fakeMessageRepo struct {
	store *memStore
}

func (r *fakeMessageRepo) Create(ctx context.Context, message *entity.Message) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.messages = append(r.store.messages, *message)
	return nil
}

func (r *fakeMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Message
	for _, m := range r.store.messages {
		keep := true
		for _, spec := range specs {
			if s, ok := spec.(specification.ByConversationID); ok && m.ConversationId != s.ConversationID {
				keep = false
			}
		}
		if keep {
			copied := m
			out = append(out, &copied)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func (r *fakeMessageRepo) DeleteByConversationId(ctx context.Context, conversationId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	kept := r.store.messages[:0]
	for _, m := range r.store.messages {
		if m.ConversationId != conversationId {
			kept = append(kept, m)
		}
	}
	r.store.messages = kept
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}
