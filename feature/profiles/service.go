package profiles

import (
	"strings"
	"sync"
	"time"

	"app-webserver/core/apperr"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Profile is a stored client profile.
type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	AccessKey string    `json:"accessKey"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateRequest is the body of POST /api/client-profiles.
type CreateRequest struct {
	Name      string `json:"name"`
	AccessKey string `json:"accessKey"`
}

// UpdateRequest is the body of PATCH /api/client-profiles/:id. Nil fields are left unchanged.
type UpdateRequest struct {
	Name *string `json:"name"`
}

// Service is a mutex-guarded in-memory profile store.
type Service struct {
	logger *zap.Logger

	mu       sync.RWMutex
	profiles map[string]*Profile
	order    []string
}

// NewService creates an empty store.
func NewService(logger *zap.Logger) *Service {
	return &Service{
		logger:   logger,
		profiles: make(map[string]*Profile),
	}
}

// List returns every profile in creation order.
func (s *Service) List() []Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Profile, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.profiles[id])
	}
	return out
}

// Get returns one profile.
func (s *Service) Get(id string) (*Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[id]
	if !ok {
		return nil, apperr.New(apperr.KindNotFound, "client profile %s not found", id)
	}
	cp := *p
	return &cp, nil
}

// Create validates req and stores a new profile.
func (s *Service) Create(req CreateRequest) (*Profile, error) {
	name := strings.TrimSpace(req.Name)
	key := strings.TrimSpace(req.AccessKey)
	if name == "" {
		return nil, apperr.New(apperr.KindBadRequest, "name is required")
	}
	if key == "" {
		return nil, apperr.New(apperr.KindBadRequest, "accessKey is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.profiles {
		if p.AccessKey == key {
			return nil, apperr.New(apperr.KindConflict, "access key already used by profile %s", p.ID)
		}
	}

	p := &Profile{
		ID:        uuid.NewString(),
		Name:      name,
		AccessKey: key,
		CreatedAt: time.Now().UTC(),
	}
	s.profiles[p.ID] = p
	s.order = append(s.order, p.ID)

	s.logger.Info("Client profile created", zap.String("id", p.ID), zap.String("name", p.Name))
	cp := *p
	return &cp, nil
}

// Update applies req to the profile with the given id.
func (s *Service) Update(id string, req UpdateRequest) (*Profile, error) {
	var name string
	if req.Name != nil {
		name = strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperr.New(apperr.KindBadRequest, "name cannot be empty")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[id]
	if !ok {
		return nil, apperr.New(apperr.KindNotFound, "client profile %s not found", id)
	}
	if req.Name != nil {
		p.Name = name
	}
	cp := *p
	return &cp, nil
}

// Delete removes the profile with the given id.
func (s *Service) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[id]; !ok {
		return apperr.New(apperr.KindNotFound, "client profile %s not found", id)
	}
	delete(s.profiles, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	s.logger.Info("Client profile deleted", zap.String("id", id))
	return nil
}
