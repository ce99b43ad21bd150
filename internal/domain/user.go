package domain

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleManager  Role = "MANAGER"
)

// Toggle flips CUSTOMER to MANAGER and anything else to CUSTOMER.
func (r Role) Toggle() Role {
	if r == RoleCustomer {
		return RoleManager
	}
	return RoleCustomer
}

func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleManager
}

type User struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
	Deleted      bool   `json:"-"`
}
