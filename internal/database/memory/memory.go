// Package memory is an in-process repository used when MongoDB is disabled
// and in tests. Data does not survive a restart.
package memory

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"SmartShop/entity"
)

type image struct {
	filename string
	meta     entity.ImageMetadata
	data     []byte
}

type Store struct {
	mu        sync.RWMutex
	users     map[string]*entity.User
	products  map[string]*entity.Product
	orders    map[string]*entity.Order
	carts     map[string]*entity.Cart
	questions []*entity.CustomQuestion
	images    map[string]*image
	imageSeq  int
}

func New() *Store {
	return &Store{
		users:    make(map[string]*entity.User),
		products: make(map[string]*entity.Product),
		orders:   make(map[string]*entity.Order),
		carts:    make(map[string]*entity.Cart),
		images:   make(map[string]*image),
	}
}

// users

func (s *Store) CreateUser(_ context.Context, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return entity.ErrConflict
		}
	}
	u := *user
	s.users[u.ID] = &u
	return nil
}

func (s *Store) findUser(match func(u *entity.User) bool) *entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if match(u) {
			found := *u
			return &found
		}
	}
	return nil
}

func (s *Store) GetUserByID(_ context.Context, id string) (*entity.User, error) {
	return s.findUser(func(u *entity.User) bool { return u.ID == id }), nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	email = strings.ToLower(email)
	return s.findUser(func(u *entity.User) bool { return u.Email == email }), nil
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (*entity.User, error) {
	return s.findUser(func(u *entity.User) bool { return u.Username == username }), nil
}

func (s *Store) updateUser(id string, fn func(u *entity.User)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return entity.NotFoundError("user " + id)
	}
	fn(u)
	return nil
}

func (s *Store) SetEmailVerified(_ context.Context, id string) error {
	return s.updateUser(id, func(u *entity.User) { u.EmailVerified = true })
}

func (s *Store) SetPasswordHash(_ context.Context, id, hash string) error {
	return s.updateUser(id, func(u *entity.User) { u.PasswordHash = hash })
}

// products

func (s *Store) SaveProduct(_ context.Context, product *entity.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := *product
	s.products[p.ID] = &p
	return nil
}

func (s *Store) UpdateProduct(_ context.Context, product *entity.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[product.ID]; !ok {
		return entity.NotFoundError("product " + product.ID)
	}
	p := *product
	s.products[p.ID] = &p
	return nil
}

func (s *Store) DeleteProduct(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return entity.NotFoundError("product " + id)
	}
	delete(s.products, id)
	return nil
}

func (s *Store) GetProduct(_ context.Context, id string) (*entity.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	found := *p
	return &found, nil
}

// ListProducts returns matching products, newest first.
func (s *Store) ListProducts(_ context.Context, filter entity.ProductFilter) ([]entity.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	products := make([]entity.Product, 0)
	for _, p := range s.products {
		if filter.Match(p) {
			products = append(products, *p)
		}
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
	return products, nil
}

func (s *Store) Categories(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	categories := make([]string, 0)
	for _, p := range s.products {
		if p.Category != "" && !slices.Contains(categories, p.Category) {
			categories = append(categories, p.Category)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

// carts

func (s *Store) GetCart(_ context.Context, sessionID string) (*entity.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.carts[sessionID]
	if !ok {
		return nil, nil
	}
	cart := *c
	cart.Items = slices.Clone(c.Items)
	return &cart, nil
}

func (s *Store) SaveCart(_ context.Context, cart *entity.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *cart
	c.Items = slices.Clone(cart.Items)
	c.UpdatedAt = time.Now().UTC()
	s.carts[c.SessionID] = &c
	return nil
}

func (s *Store) DeleteCart(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	return nil
}

// questions

func (s *Store) SaveQuestion(_ context.Context, q *entity.CustomQuestion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved := *q
	s.questions = append(s.questions, &saved)
	return nil
}

// ListQuestions returns questions newest first; an empty status means all.
func (s *Store) ListQuestions(_ context.Context, status entity.QuestionStatus) ([]entity.CustomQuestion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	questions := make([]entity.CustomQuestion, 0)
	for i := len(s.questions) - 1; i >= 0; i-- {
		q := s.questions[i]
		if status == "" || q.Status == status {
			questions = append(questions, *q)
		}
	}
	return questions, nil
}

func (s *Store) UpdateQuestionStatus(_ context.Context, id string, status entity.QuestionStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, q := range s.questions {
		if q.ID == id {
			q.Status = status
			return nil
		}
	}
	return entity.NotFoundError("question " + id)
}
