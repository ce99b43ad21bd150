// Package filter composes rental and payment search criteria into a
// conjunction of predicates that the postgres repositories render as SQL.
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"carsharing-backend/internal/domain"
)

// Predicate is a closed union. Only the types in this file implement it.
type Predicate interface {
	isPredicate()
}

// ByUserIDs matches rentals (or payments through their rental) owned by any
// of the given users.
type ByUserIDs struct {
	IDs []int64
}

// ByActiveStatus matches active rentals when Active is true:
//
//	actual_return_date IS NULL AND return_date >= today
//
// and otherwise rentals that were returned or have expired:
//
//	actual_return_date IS NOT NULL OR return_date < today
type ByActiveStatus struct {
	Active bool
	Today  time.Time
}

func (ByUserIDs) isPredicate()      {}
func (ByActiveStatus) isPredicate() {}

// Filter is a conjunction of predicates. The zero value matches everything.
type Filter struct {
	preds []Predicate
}

func Of(preds ...Predicate) Filter {
	return Filter{preds: append([]Predicate(nil), preds...)}
}

// And returns a new filter with p conjoined.
func (f Filter) And(p Predicate) Filter {
	next := make([]Predicate, len(f.preds), len(f.preds)+1)
	copy(next, f.preds)
	return Filter{preds: append(next, p)}
}

func (f Filter) Predicates() []Predicate {
	return f.preds
}

func (f Filter) IsEmpty() bool {
	return len(f.preds) == 0
}

// Where renders the filter as a WHERE fragment over the rentals alias "r",
// numbering placeholders from firstArg.
func (f Filter) Where(firstArg int) (string, []any) {
	if f.IsEmpty() {
		return "TRUE", nil
	}

	clauses := make([]string, 0, len(f.preds))
	args := make([]any, 0, len(f.preds))
	n := firstArg
	for _, p := range f.preds {
		switch p := p.(type) {
		case ByUserIDs:
			clauses = append(clauses, fmt.Sprintf("r.user_id = ANY($%d)", n))
			args = append(args, pq.Array(p.IDs))
		case ByActiveStatus:
			if p.Active {
				clauses = append(clauses, fmt.Sprintf("(r.actual_return_date IS NULL AND r.return_date >= $%d)", n))
			} else {
				clauses = append(clauses, fmt.Sprintf("(r.actual_return_date IS NOT NULL OR r.return_date < $%d)", n))
			}
			args = append(args, domain.DateOf(p.Today))
		default:
			panic(fmt.Sprintf("filter: unhandled predicate %T", p))
		}
		n++
	}
	return strings.Join(clauses, " AND "), args
}

// Matches evaluates the filter against a rental in memory with the same
// semantics as Where.
func (f Filter) Matches(r *domain.Rental) bool {
	for _, p := range f.preds {
		switch p := p.(type) {
		case ByUserIDs:
			found := false
			for _, id := range p.IDs {
				if id == r.UserID {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		case ByActiveStatus:
			today := domain.DateOf(p.Today)
			if p.Active {
				if !(r.ActualReturnDate == nil && !r.ReturnDate.Before(today)) {
					return false
				}
			} else if !(r.ActualReturnDate != nil || r.ReturnDate.Before(today)) {
				return false
			}
		default:
			panic(fmt.Sprintf("filter: unhandled predicate %T", p))
		}
	}
	return true
}
