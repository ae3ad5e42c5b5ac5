package core

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/oniks98/learn-lingo-sub000/internal/models"
)

type fakeSender struct {
	recipients []string
	subjects   []string
	bodies     []string
	err        error
}

func (f *fakeSender) Send(recipient, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.recipients = append(f.recipients, recipient)
	f.subjects = append(f.subjects, subject)
	f.bodies = append(f.bodies, body)
	return nil
}

type fakeQueue struct {
	published map[string][][]byte
	err       error
}

func newFakeQueue() *fakeQueue {
	return &fakeQueue{published: make(map[string][][]byte)}
}

func (f *fakeQueue) Publish(queueName string, body []byte) error {
	if f.err != nil {
		return f.err
	}
	f.published[queueName] = append(f.published[queueName], body)
	return nil
}

func (f *fakeQueue) Consume(queueName string, handler func(body []byte)) error {
	for _, body := range f.published[queueName] {
		handler(body)
	}
	return nil
}

func (f *fakeQueue) Close() error { return nil }

func testBooking() *models.Booking {
	return &models.Booking{
		ID:          "b1",
		Email:       "alex@example.com",
		Name:        "Alex",
		BookingDate: time.Date(2026, 3, 8, 10, 0, 0, 0, time.UTC),
	}
}

func TestMailServiceDispatch(t *testing.T) {
	ctx := context.Background()

	t.Run("inline delivery without a queue", func(t *testing.T) {
		sender := &fakeSender{}
		svc := NewMailService(sender, nil, zap.NewNop())

		require.NoError(t, svc.DispatchBookingConfirmation(ctx, testBooking(), "Jane Doe"))

		require.Len(t, sender.recipients, 1)
		assert.Equal(t, "alex@example.com", sender.recipients[0])
		assert.Contains(t, sender.bodies[0], "Jane Doe")
		assert.Contains(t, sender.bodies[0], "08 Mar 2026")
	})

	t.Run("with a queue the job is published, not sent", func(t *testing.T) {
		sender := &fakeSender{}
		queue := newFakeQueue()
		svc := NewMailService(sender, queue, zap.NewNop())

		require.NoError(t, svc.DispatchBookingConfirmation(ctx, testBooking(), "Jane Doe"))

		assert.Empty(t, sender.recipients)
		require.Len(t, queue.published[BookingEmailQueue], 1)

		var job BookingEmailJob
		require.NoError(t, json.Unmarshal(queue.published[BookingEmailQueue][0], &job))
		assert.Equal(t, "b1", job.BookingID)
		assert.Equal(t, "Jane Doe", job.TeacherName)
	})

	t.Run("consumer delivers queued jobs", func(t *testing.T) {
		sender := &fakeSender{}
		queue := newFakeQueue()
		svc := NewMailService(sender, queue, zap.NewNop())

		require.NoError(t, svc.DispatchBookingConfirmation(ctx, testBooking(), "Jane Doe"))
		require.NoError(t, svc.ConsumeBookingEmails())

		require.Len(t, sender.recipients, 1)
		assert.Equal(t, "alex@example.com", sender.recipients[0])
	})

	t.Run("malformed queue payloads are dropped, not fatal", func(t *testing.T) {
		sender := &fakeSender{}
		queue := newFakeQueue()
		require.NoError(t, queue.Publish(BookingEmailQueue, []byte("{broken")))

		svc := NewMailService(sender, queue, zap.NewNop())
		require.NoError(t, svc.ConsumeBookingEmails())
		assert.Empty(t, sender.recipients)
	})

	t.Run("publish failure surfaces", func(t *testing.T) {
		queue := newFakeQueue()
		queue.err = errNotRecoverable
		svc := NewMailService(&fakeSender{}, queue, zap.NewNop())

		assert.Error(t, svc.DispatchBookingConfirmation(ctx, testBooking(), "Jane Doe"))
	})

	t.Run("no sender and no queue", func(t *testing.T) {
		svc := NewMailService(nil, nil, zap.NewNop())
		assert.Error(t, svc.DispatchBookingConfirmation(ctx, testBooking(), "Jane Doe"))
	})
}
