package filter

import "fmt"

// RentalSearchParams carries the optional rental criteria. Nil fields are
// not applied.
type RentalSearchParams struct {
	UserIDs  []string
	IsActive *bool
}

type PaymentSearchParams struct {
	UsersIDs []string
}

type RentalFilterBuilder struct {
	userID   Provider
	isActive Provider
}

// NewRentalFilterBuilder resolves its providers up front so that a missing
// registration fails at wiring time rather than on a request.
func NewRentalFilterBuilder(reg *Registry) (*RentalFilterBuilder, error) {
	userID, err := reg.Provider(KeyUserID)
	if err != nil {
		return nil, fmt.Errorf("rental filter builder: %w", err)
	}
	isActive, err := reg.Provider(KeyIsActive)
	if err != nil {
		return nil, fmt.Errorf("rental filter builder: %w", err)
	}
	return &RentalFilterBuilder{userID: userID, isActive: isActive}, nil
}

func (b *RentalFilterBuilder) Build(params RentalSearchParams) (Filter, error) {
	var f Filter
	if params.UserIDs != nil {
		p, err := b.userID.Build(IDSet(params.UserIDs))
		if err != nil {
			return Filter{}, err
		}
		f = f.And(p)
	}
	if params.IsActive != nil {
		p, err := b.isActive.Build(Flag(*params.IsActive))
		if err != nil {
			return Filter{}, err
		}
		f = f.And(p)
	}
	return f, nil
}

type PaymentFilterBuilder struct {
	usersID Provider
}

func NewPaymentFilterBuilder(reg *Registry) (*PaymentFilterBuilder, error) {
	usersID, err := reg.Provider(KeyUsersID)
	if err != nil {
		return nil, fmt.Errorf("payment filter builder: %w", err)
	}
	return &PaymentFilterBuilder{usersID: usersID}, nil
}

// Build produces predicates over the payment's rental; the payment
// repository joins rentals as "r".
func (b *PaymentFilterBuilder) Build(params PaymentSearchParams) (Filter, error) {
	var f Filter
	if params.UsersIDs != nil {
		p, err := b.usersID.Build(IDSet(params.UsersIDs))
		if err != nil {
			return Filter{}, err
		}
		f = f.And(p)
	}
	return f, nil
}
