package http

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"carsharing-backend/internal/domain"
)

const minPasswordLength = 8

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrValidation, fmt.Sprintf(format, args...))
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return validationError("%s is required", field)
	}
	return nil
}

type registerRequest struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	RepeatPassword string `json:"repeatPassword"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
}

func (r registerRequest) validate() error {
	for _, f := range []struct{ name, value string }{
		{"email", r.Email}, {"password", r.Password}, {"firstName", r.FirstName}, {"lastName", r.LastName},
	} {
		if err := required(f.name, f.value); err != nil {
			return err
		}
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return validationError("email is malformed")
	}
	if len(r.Password) < minPasswordLength {
		return validationError("password must be at least %d characters", minPasswordLength)
	}
	if r.RepeatPassword != r.Password {
		return validationError("passwords do not match")
	}
	return nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type userResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      string(u.Role),
	}
}

type profileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type carRequest struct {
	Model     string `json:"model"`
	Brand     string `json:"brand"`
	Type      string `json:"type"`
	Inventory *int32 `json:"inventory"`
	DailyFee  string `json:"dailyFee"`
}

func (r carRequest) toDomain() (*domain.Car, error) {
	if err := required("model", r.Model); err != nil {
		return nil, err
	}
	if err := required("brand", r.Brand); err != nil {
		return nil, err
	}
	if r.Inventory == nil {
		return nil, validationError("inventory is required")
	}
	if *r.Inventory < 0 {
		return nil, validationError("inventory must not be negative")
	}
	fee, err := decimal.NewFromString(strings.TrimSpace(r.DailyFee))
	if err != nil {
		return nil, validationError("dailyFee is not a decimal")
	}
	if fee.IsNegative() {
		return nil, validationError("dailyFee must not be negative")
	}
	return &domain.Car{
		Model:     strings.TrimSpace(r.Model),
		Brand:     strings.TrimSpace(r.Brand),
		Type:      domain.ParseCarType(r.Type),
		Inventory: *r.Inventory,
		DailyFee:  fee,
	}, nil
}

type carResponse struct {
	ID        int64  `json:"id"`
	Model     string `json:"model"`
	Brand     string `json:"brand"`
	Type      string `json:"type"`
	Inventory int32  `json:"inventory"`
	DailyFee  string `json:"dailyFee"`
}

func toCarResponse(c *domain.Car) carResponse {
	return carResponse{
		ID:        c.ID,
		Model:     c.Model,
		Brand:     c.Brand,
		Type:      string(c.Type),
		Inventory: c.Inventory,
		DailyFee:  c.DailyFee.StringFixed(2),
	}
}

type carPageResponse struct {
	Cars  []carResponse `json:"cars"`
	Page  int32         `json:"page"`
	Size  int32         `json:"size"`
	Total int32         `json:"total"`
}

type rentalRequest struct {
	CarID      int64  `json:"carId"`
	RentalDate string `json:"rentalDate"`
	ReturnDate string `json:"returnDate"`
}

func (r rentalRequest) parse() (carID int64, rentalDate, returnDate time.Time, err error) {
	if r.CarID <= 0 {
		return 0, time.Time{}, time.Time{}, validationError("carId must be positive")
	}
	if rentalDate, err = domain.ParseDate(strings.TrimSpace(r.RentalDate)); err != nil {
		return 0, time.Time{}, time.Time{}, err
	}
	if returnDate, err = domain.ParseDate(strings.TrimSpace(r.ReturnDate)); err != nil {
		return 0, time.Time{}, time.Time{}, err
	}
	if returnDate.Before(rentalDate) {
		return 0, time.Time{}, time.Time{}, validationError("returnDate must not be before rentalDate")
	}
	return r.CarID, rentalDate, returnDate, nil
}

type rentalResponse struct {
	ID               int64   `json:"id"`
	RentalDate       string  `json:"rentalDate"`
	ReturnDate       string  `json:"returnDate"`
	ActualReturnDate *string `json:"actualReturnDate"`
	CarID            int64   `json:"carId"`
	UserID           int64   `json:"userId"`
}

func toRentalResponse(r *domain.Rental) rentalResponse {
	resp := rentalResponse{
		ID:         r.ID,
		RentalDate: domain.FormatDate(r.RentalDate),
		ReturnDate: domain.FormatDate(r.ReturnDate),
		CarID:      r.CarID,
		UserID:     r.UserID,
	}
	if r.ActualReturnDate != nil {
		d := domain.FormatDate(*r.ActualReturnDate)
		resp.ActualReturnDate = &d
	}
	return resp
}

type paymentRequest struct {
	RentalID int64 `json:"rentalId"`
}

type paymentResponse struct {
	ID          int64  `json:"id"`
	Status      string `json:"status"`
	Type        string `json:"type"`
	RentalID    int64  `json:"rentalId"`
	SessionURL  string `json:"sessionUrl"`
	SessionID   string `json:"sessionId"`
	AmountToPay string `json:"amountToPay"`
}

func toPaymentResponse(p *domain.Payment) paymentResponse {
	return paymentResponse{
		ID:          p.ID,
		Status:      string(p.Status),
		Type:        string(p.Type),
		RentalID:    p.RentalID,
		SessionURL:  p.SessionURL,
		SessionID:   p.SessionID,
		AmountToPay: p.AmountToPay.StringFixed(2),
	}
}

type messageResponse struct {
	Message string `json:"message"`
}
