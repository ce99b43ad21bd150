package service

import (
	"fmt"
	"strings"

	"carsharing-backend/internal/domain"
)

const (
	prefixNewRentals         = "new rentals created:\n"
	prefixOverdueRentals     = "overdue rentals:\n"
	prefixSuccessfulPayments = "successful payments:\n"
)

// Dispatcher queues a message for asynchronous delivery.
type Dispatcher interface {
	Dispatch(channelID, message string)
}

type notificationService struct {
	dispatcher Dispatcher
	channel    string
}

// NewNotificationService sends every message to the operators' channel.
func NewNotificationService(dispatcher Dispatcher, adminChannel string) NotificationService {
	return &notificationService{dispatcher: dispatcher, channel: adminChannel}
}

func (s *notificationService) NotifyNewRental(r *domain.Rental) {
	s.dispatcher.Dispatch(s.channel, prefixNewRentals+fmt.Sprintf(
		"User with id %d rent a car with id %d from %s to %s",
		r.UserID, r.CarID, domain.FormatDate(r.RentalDate), domain.FormatDate(r.ReturnDate)))
}

func (s *notificationService) NotifyOverdueRental(r *domain.Rental) {
	s.dispatcher.Dispatch(s.channel, prefixOverdueRentals+overdueLine(r))
}

func (s *notificationService) NotifyOverdueDigest(rentals []domain.Rental) {
	if len(rentals) == 0 {
		s.dispatcher.Dispatch(s.channel, prefixOverdueRentals+"No rentals are overdue today!")
		return
	}
	lines := make([]string, len(rentals))
	for i := range rentals {
		r := &rentals[i]
		lines[i] = fmt.Sprintf("Rental %d: user with id %d has not returned car with id %d, due %s",
			r.ID, r.UserID, r.CarID, domain.FormatDate(r.ReturnDate))
	}
	s.dispatcher.Dispatch(s.channel, prefixOverdueRentals+strings.Join(lines, "\n"))
}

func (s *notificationService) NotifySuccessfulPayment(p *domain.Payment) {
	s.dispatcher.Dispatch(s.channel, prefixSuccessfulPayments+fmt.Sprintf(
		"Payment with id %d for rental %d was paid, amount %s",
		p.ID, p.RentalID, p.AmountToPay.StringFixed(2)))
}

func overdueLine(r *domain.Rental) string {
	return fmt.Sprintf("User with id %d returned the car late, car id %d", r.UserID, r.CarID)
}
