package core

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/oniks98/learn-lingo-sub000/internal/models"
	"github.com/oniks98/learn-lingo-sub000/pkg/mailer"
	"github.com/oniks98/learn-lingo-sub000/pkg/messagequeue"
)

// BookingEmailQueue is the queue carrying booking confirmation jobs.
const BookingEmailQueue = "booking_emails"

// BookingEmailJob is the queue payload for one confirmation email.
type BookingEmailJob struct {
	BookingID   string `json:"bookingId"`
	Recipient   string `json:"recipient"`
	StudentName string `json:"studentName"`
	TeacherName string `json:"teacherName"`
	BookingDate string `json:"bookingDate"`
}

// MailService implements MailDispatcher. With a queue configured, jobs are
// published and a background consumer delivers them; without one, delivery is
// inline on the request path.
type MailService struct {
	sender mailer.Sender
	queue  messagequeue.MessageQueue
	logger *zap.Logger
}

// NewMailService creates the mail pipeline. queue may be nil for inline
// delivery; sender may be nil only when a queue handles delivery elsewhere.
func NewMailService(sender mailer.Sender, queue messagequeue.MessageQueue, logger *zap.Logger) *MailService {
	return &MailService{sender: sender, queue: queue, logger: logger}
}

// DispatchBookingConfirmation queues or sends the confirmation email for a
// freshly created booking.
func (s *MailService) DispatchBookingConfirmation(ctx context.Context, booking *models.Booking, teacherName string) error {
	job := BookingEmailJob{
		BookingID:   booking.ID,
		Recipient:   booking.Email,
		StudentName: booking.Name,
		TeacherName: teacherName,
		BookingDate: booking.BookingDate.Format("02 Jan 2006 15:04 MST"),
	}

	if s.queue != nil {
		body, err := json.Marshal(job)
		if err != nil {
			return fmt.Errorf("failed to encode booking email job: %w", err)
		}
		if err := s.queue.Publish(BookingEmailQueue, body); err != nil {
			return fmt.Errorf("failed to publish booking email job: %w", err)
		}
		return nil
	}
	return s.deliver(job)
}

// ConsumeBookingEmails drains the booking email queue. It blocks; run it on
// its own goroutine.
func (s *MailService) ConsumeBookingEmails() error {
	if s.queue == nil {
		return fmt.Errorf("no message queue configured")
	}
	return s.queue.Consume(BookingEmailQueue, func(body []byte) {
		var job BookingEmailJob
		if err := json.Unmarshal(body, &job); err != nil {
			s.logger.Error("Dropping malformed booking email job", zap.Error(err))
			return
		}
		if err := s.deliver(job); err != nil {
			s.logger.Error("Failed to deliver booking confirmation",
				zap.String("booking_id", job.BookingID),
				zap.Error(err))
		}
	})
}

func (s *MailService) deliver(job BookingEmailJob) error {
	if s.sender == nil {
		return fmt.Errorf("no mail sender configured")
	}
	subject := "Your trial lesson is booked"
	body := fmt.Sprintf(
		"<html><p>Hi %s,</p>"+
			"<p>Your trial lesson with %s is booked for %s.</p>"+
			"<p>See you there!<br>The LearnLingo team</p></html>",
		job.StudentName, job.TeacherName, job.BookingDate)
	return s.sender.Send(job.Recipient, subject, body)
}
