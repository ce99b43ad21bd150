package filter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"carsharing-backend/internal/domain"
)

const (
	KeyUserID   = "userId"
	KeyIsActive = "isActive"
	KeyUsersID  = "usersId"
)

var (
	ErrNoProviderFound  = errors.New("no predicate provider registered")
	ErrUnsupportedInput = errors.New("predicate provider does not accept this input")
)

// Input is the raw value handed to a provider. IDSet and Flag are the only
// shapes in use.
type Input interface {
	isInput()
}

// IDSet holds identifier tokens as received from the client, for example
// `["1"` or `3]`.
type IDSet []string

type Flag bool

func (IDSet) isInput() {}
func (Flag) isInput()  {}

// Provider turns one input shape into a predicate for a single field.
type Provider interface {
	Key() string
	Build(in Input) (Predicate, error)
}

type userIDProvider struct {
	key string
}

// NewUserIDProvider builds ByUserIDs predicates from identifier tokens.
func NewUserIDProvider(key string) Provider {
	return userIDProvider{key: key}
}

func (p userIDProvider) Key() string { return p.key }

func (p userIDProvider) Build(in Input) (Predicate, error) {
	set, ok := in.(IDSet)
	if !ok {
		return nil, fmt.Errorf("%w: %s wants an id set, got %T", ErrUnsupportedInput, p.key, in)
	}
	ids, err := ParseIDs(set)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.key, err)
	}
	return ByUserIDs{IDs: ids}, nil
}

type activeStatusProvider struct {
	key string
	now func() time.Time
}

// NewActiveStatusProvider builds ByActiveStatus predicates evaluated against
// the UTC date reported by now.
func NewActiveStatusProvider(key string, now func() time.Time) Provider {
	return activeStatusProvider{key: key, now: now}
}

func (p activeStatusProvider) Key() string { return p.key }

func (p activeStatusProvider) Build(in Input) (Predicate, error) {
	flag, ok := in.(Flag)
	if !ok {
		return nil, fmt.Errorf("%w: %s wants a flag, got %T", ErrUnsupportedInput, p.key, in)
	}
	return ByActiveStatus{Active: bool(flag), Today: domain.DateOf(p.now())}, nil
}

// Registry maps filter keys to providers.
type Registry struct {
	providers map[string]Provider
}

func NewRegistry(providers ...Provider) (*Registry, error) {
	r := &Registry{providers: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		if _, dup := r.providers[p.Key()]; dup {
			return nil, fmt.Errorf("duplicate predicate provider %q", p.Key())
		}
		r.providers[p.Key()] = p
	}
	return r, nil
}

// DefaultRegistry registers every key understood by the rental and payment
// builders.
func DefaultRegistry(now func() time.Time) *Registry {
	r, _ := NewRegistry(
		NewUserIDProvider(KeyUserID),
		NewActiveStatusProvider(KeyIsActive, now),
		NewUserIDProvider(KeyUsersID),
	)
	return r
}

func (r *Registry) Provider(key string) (Provider, error) {
	p, ok := r.providers[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoProviderFound, key)
	}
	return p, nil
}

// ParseIDs strips brackets and double quotes from each token and parses it
// as a base-10 integer. Tokens that are empty after stripping are skipped.
func ParseIDs(tokens []string) ([]int64, error) {
	ids := make([]int64, 0, len(tokens))
	for _, tok := range tokens {
		clean := strings.TrimSpace(idNoise.Replace(tok))
		if clean == "" {
			continue
		}
		id, err := strconv.ParseInt(clean, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed id %q", domain.ErrValidation, tok)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

var idNoise = strings.NewReplacer("[", "", "]", "", `"`, "")
