package domain

import "time"

// Rental dates are civil dates stored as UTC midnight.
type Rental struct {
	ID               int64      `json:"id"`
	RentalDate       time.Time  `json:"rentalDate"`
	ReturnDate       time.Time  `json:"returnDate"`
	ActualReturnDate *time.Time `json:"actualReturnDate,omitempty"`
	CarID            int64      `json:"carId"`
	UserID           int64      `json:"userId"`
	Deleted          bool       `json:"-"`
}

// IsActive reports whether the rental is neither returned nor past its
// expected return date. A rental due today is still active.
func (r *Rental) IsActive(today time.Time) bool {
	return r.ActualReturnDate == nil && !r.ReturnDate.Before(DateOf(today))
}

// IsOverdue is true when the expected return date is strictly before today.
func (r *Rental) IsOverdue(today time.Time) bool {
	return r.ReturnDate.Before(DateOf(today))
}

// BillableDays is the number of whole days between rental and return date.
func (r *Rental) BillableDays() int64 {
	return DaysBetween(r.RentalDate, r.ReturnDate)
}
