package handlers

import (
	"context"
	"testing"

	"github.com/azurvoyages/tours-api/internal/models"
	"github.com/azurvoyages/tours-api/internal/notifier"
	"github.com/azurvoyages/tours-api/internal/repository"
)

type recordingNotifier struct {
	bookings []*models.Booking
	tours    []*models.Tour
}

func (n *recordingNotifier) NotifyBooking(b *models.Booking, t *models.Tour) error {
	n.bookings = append(n.bookings, b)
	n.tours = append(n.tours, t)
	return nil
}

func newBookingHandler(env *testEnv, n *recordingNotifier) *BookingHandler {
	var notif notifier.Notifier
	if n != nil {
		notif = n
	}
	return NewBookingHandler(repository.NewBookingRepository(env.db), repository.NewTourRepository(env.db), notif, env.authHandler)
}

func createBooking(t *testing.T, handler *BookingHandler, token string, mutate func(*BookingWriteBody)) (*BookingResponse, error) {
	t.Helper()
	req := &CreateBookingRequest{}
	req.Authorization = token
	req.Body.UserEmail = "guest@example.com"
	req.Body.UserName = "Guest"
	req.Body.BookingDate = "2026-09-15"
	req.Body.Participants = 2
	req.Body.TotalPrice = "99.80"
	if mutate != nil {
		mutate(&req.Body)
	}
	return handler.HandleCreate(context.Background(), req)
}

func TestHandleCreateBooking(t *testing.T) {
	env := setup(t)
	noted := &recordingNotifier{}
	handler := newBookingHandler(env, noted)
	tourHandler := newTourHandler(env)

	t.Run("Success", func(t *testing.T) {
		resp, err := createBooking(t, handler, env.userToken, nil)
		if err != nil {
			t.Fatalf("HandleCreate returned error: %v", err)
		}
		if resp.Body.ID == "" {
			t.Error("expected a generated booking ID")
		}
		if resp.Body.Status != models.BookingStatusPending {
			t.Errorf("expected default status pending, got %q", resp.Body.Status)
		}
		if resp.Body.BookingDate != "2026-09-15" {
			t.Errorf("expected the date to round-trip, got %q", resp.Body.BookingDate)
		}
		if len(noted.bookings) != 1 {
			t.Errorf("expected one notification, got %d", len(noted.bookings))
		}
	})

	t.Run("WithTour", func(t *testing.T) {
		tour := createTour(t, tourHandler, env.adminToken, "Booked Tour")
		resp, err := createBooking(t, handler, env.userToken, func(b *BookingWriteBody) {
			b.TourID = &tour.ID
		})
		if err != nil {
			t.Fatalf("HandleCreate returned error: %v", err)
		}
		if resp.Body.TourID == nil || *resp.Body.TourID != tour.ID {
			t.Errorf("expected booking to reference the tour, got %v", resp.Body.TourID)
		}
		last := noted.tours[len(noted.tours)-1]
		if last == nil || last.ID != tour.ID {
			t.Error("expected the notification to carry the tour")
		}
	})

	t.Run("UnknownTour", func(t *testing.T) {
		missing := "00000000-0000-0000-0000-000000000000"
		_, err := createBooking(t, handler, env.userToken, func(b *BookingWriteBody) {
			b.TourID = &missing
		})
		assertStatus(t, err, 404)
	})

	t.Run("MissingFields", func(t *testing.T) {
		_, err := createBooking(t, handler, env.userToken, func(b *BookingWriteBody) {
			b.UserEmail = ""
		})
		assertStatus(t, err, 400)
	})

	t.Run("MalformedEmail", func(t *testing.T) {
		_, err := createBooking(t, handler, env.userToken, func(b *BookingWriteBody) {
			b.UserEmail = "not-an-email"
		})
		assertStatus(t, err, 400)
	})

	t.Run("BadDate", func(t *testing.T) {
		_, err := createBooking(t, handler, env.userToken, func(b *BookingWriteBody) {
			b.BookingDate = "15/09/2026"
		})
		assertStatus(t, err, 400)
	})

	t.Run("NonPositiveParticipants", func(t *testing.T) {
		_, err := createBooking(t, handler, env.userToken, func(b *BookingWriteBody) {
			b.Participants = 0
		})
		assertStatus(t, err, 400)
	})

	t.Run("BadStatus", func(t *testing.T) {
		_, err := createBooking(t, handler, env.userToken, func(b *BookingWriteBody) {
			b.Status = "done"
		})
		assertStatus(t, err, 400)
	})

	t.Run("NoToken", func(t *testing.T) {
		req := &CreateBookingRequest{}
		_, err := handler.HandleCreate(context.Background(), req)
		assertStatus(t, err, 401)
	})
}

func TestHandleListBookings(t *testing.T) {
	env := setup(t)
	handler := newBookingHandler(env, nil)

	if _, err := createBooking(t, handler, env.userToken, nil); err != nil {
		t.Fatalf("HandleCreate returned error: %v", err)
	}
	if _, err := createBooking(t, handler, env.userToken, func(b *BookingWriteBody) {
		b.UserEmail = "other@example.com"
		b.Status = models.BookingStatusConfirmed
	}); err != nil {
		t.Fatalf("HandleCreate returned error: %v", err)
	}

	t.Run("All", func(t *testing.T) {
		req := &ListBookingsRequest{}
		req.Authorization = env.userToken
		resp, err := handler.HandleList(context.Background(), req)
		if err != nil {
			t.Fatalf("HandleList returned error: %v", err)
		}
		if len(resp.Body.Bookings) != 2 {
			t.Fatalf("expected 2 bookings, got %d", len(resp.Body.Bookings))
		}
	})

	t.Run("ByStatus", func(t *testing.T) {
		req := &ListBookingsRequest{}
		req.Authorization = env.userToken
		req.Status = models.BookingStatusConfirmed
		resp, err := handler.HandleList(context.Background(), req)
		if err != nil {
			t.Fatalf("HandleList returned error: %v", err)
		}
		if len(resp.Body.Bookings) != 1 || resp.Body.Bookings[0].UserEmail != "other@example.com" {
			t.Fatalf("expected only the confirmed booking, got %+v", resp.Body.Bookings)
		}
	})

	t.Run("ByEmail", func(t *testing.T) {
		req := &ListBookingsRequest{}
		req.Authorization = env.userToken
		req.Email = "guest@example.com"
		resp, err := handler.HandleList(context.Background(), req)
		if err != nil {
			t.Fatalf("HandleList returned error: %v", err)
		}
		if len(resp.Body.Bookings) != 1 {
			t.Fatalf("expected one booking for guest, got %d", len(resp.Body.Bookings))
		}
	})

	t.Run("BadStatusFilter", func(t *testing.T) {
		req := &ListBookingsRequest{}
		req.Authorization = env.userToken
		req.Status = "done"
		_, err := handler.HandleList(context.Background(), req)
		assertStatus(t, err, 400)
	})
}

func TestHandleUpdateBooking(t *testing.T) {
	env := setup(t)
	handler := newBookingHandler(env, nil)
	tourHandler := newTourHandler(env)

	created, err := createBooking(t, handler, env.userToken, nil)
	if err != nil {
		t.Fatalf("HandleCreate returned error: %v", err)
	}

	t.Run("NonAdminForbidden", func(t *testing.T) {
		req := &UpdateBookingRequest{}
		req.Authorization = env.userToken
		req.ID = created.Body.ID
		req.Body.Status = models.BookingStatusConfirmed
		_, err := handler.HandleUpdate(context.Background(), req)
		assertStatus(t, err, 403)
	})

	t.Run("StatusTransition", func(t *testing.T) {
		req := &UpdateBookingRequest{}
		req.Authorization = env.adminToken
		req.ID = created.Body.ID
		req.Body.Status = models.BookingStatusConfirmed
		resp, err := handler.HandleUpdate(context.Background(), req)
		if err != nil {
			t.Fatalf("HandleUpdate returned error: %v", err)
		}
		if resp.Body.Status != models.BookingStatusConfirmed {
			t.Errorf("expected confirmed, got %q", resp.Body.Status)
		}
	})

	t.Run("AttachAndDetachTour", func(t *testing.T) {
		tour := createTour(t, tourHandler, env.adminToken, "Attached Tour")

		req := &UpdateBookingRequest{}
		req.Authorization = env.adminToken
		req.ID = created.Body.ID
		req.Body.TourID = &tour.ID
		resp, err := handler.HandleUpdate(context.Background(), req)
		if err != nil {
			t.Fatalf("HandleUpdate returned error: %v", err)
		}
		if resp.Body.TourID == nil || *resp.Body.TourID != tour.ID {
			t.Fatalf("expected tour to be attached, got %v", resp.Body.TourID)
		}

		empty := ""
		req = &UpdateBookingRequest{}
		req.Authorization = env.adminToken
		req.ID = created.Body.ID
		req.Body.TourID = &empty
		resp, err = handler.HandleUpdate(context.Background(), req)
		if err != nil {
			t.Fatalf("HandleUpdate returned error: %v", err)
		}
		if resp.Body.TourID != nil {
			t.Errorf("expected empty tourId to detach the tour, got %v", resp.Body.TourID)
		}
	})

	t.Run("SetAndClearPaymentID", func(t *testing.T) {
		payment := "pay_123"
		req := &UpdateBookingRequest{}
		req.Authorization = env.adminToken
		req.ID = created.Body.ID
		req.Body.PaymentID = &payment
		resp, err := handler.HandleUpdate(context.Background(), req)
		if err != nil {
			t.Fatalf("HandleUpdate returned error: %v", err)
		}
		if resp.Body.PaymentID == nil || *resp.Body.PaymentID != payment {
			t.Fatalf("expected payment reference to be set, got %v", resp.Body.PaymentID)
		}

		empty := ""
		req = &UpdateBookingRequest{}
		req.Authorization = env.adminToken
		req.ID = created.Body.ID
		req.Body.PaymentID = &empty
		resp, err = handler.HandleUpdate(context.Background(), req)
		if err != nil {
			t.Fatalf("HandleUpdate returned error: %v", err)
		}
		if resp.Body.PaymentID != nil {
			t.Errorf("expected empty paymentId to clear the reference, got %v", resp.Body.PaymentID)
		}
	})

	t.Run("UnknownBooking", func(t *testing.T) {
		req := &UpdateBookingRequest{}
		req.Authorization = env.adminToken
		req.ID = "00000000-0000-0000-0000-000000000000"
		req.Body.Status = models.BookingStatusCancelled
		_, err := handler.HandleUpdate(context.Background(), req)
		assertStatus(t, err, 404)
	})
}

func TestHandleDeleteBooking(t *testing.T) {
	env := setup(t)
	handler := newBookingHandler(env, nil)

	created, err := createBooking(t, handler, env.userToken, nil)
	if err != nil {
		t.Fatalf("HandleCreate returned error: %v", err)
	}

	t.Run("NonAdminForbidden", func(t *testing.T) {
		req := &DeleteBookingRequest{}
		req.Authorization = env.userToken
		req.ID = created.Body.ID
		_, err := handler.HandleDelete(context.Background(), req)
		assertStatus(t, err, 403)
	})

	t.Run("AdminDeletes", func(t *testing.T) {
		req := &DeleteBookingRequest{}
		req.Authorization = env.adminToken
		req.ID = created.Body.ID
		if _, err := handler.HandleDelete(context.Background(), req); err != nil {
			t.Fatalf("HandleDelete returned error: %v", err)
		}

		get := &GetBookingRequest{}
		get.Authorization = env.userToken
		get.ID = created.Body.ID
		_, err := handler.HandleGet(context.Background(), get)
		assertStatus(t, err, 404)
	})
}

func TestTourDeleteCascadesBookings(t *testing.T) {
	env := setup(t)
	handler := newBookingHandler(env, nil)
	tourHandler := newTourHandler(env)

	tour := createTour(t, tourHandler, env.adminToken, "Doomed Tour")
	created, err := createBooking(t, handler, env.userToken, func(b *BookingWriteBody) {
		b.TourID = &tour.ID
	})
	if err != nil {
		t.Fatalf("HandleCreate returned error: %v", err)
	}

	del := &DeleteTourRequest{}
	del.Authorization = env.adminToken
	del.ID = tour.ID
	if _, err := tourHandler.HandleDelete(context.Background(), del); err != nil {
		t.Fatalf("HandleDelete returned error: %v", err)
	}

	var count int64
	if err := env.db.Model(&models.Booking{}).Where("id = ?", created.Body.ID).Count(&count).Error; err != nil {
		t.Fatalf("failed to count bookings: %v", err)
	}
	if count != 0 {
		t.Errorf("expected the booking to be deleted with its tour, found %d", count)
	}
}
