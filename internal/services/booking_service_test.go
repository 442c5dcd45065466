package services

import (
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roamstay/hotel-booking-backend/internal/models"
	"github.com/roamstay/hotel-booking-backend/pkg/validator"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// fakeLedger is an in-memory availability ledger with per-day counters,
// mirroring the transactional semantics of the real one.
type fakeLedger struct {
	mu           sync.Mutex
	totals       map[string]int // hotelID|code -> total units
	held         map[string]int // hotelID|code|day -> held units
	reservations map[string]*models.Reservation
	reserveErr   error
	releaseCalls int
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		totals:       make(map[string]int),
		held:         make(map[string]int),
		reservations: make(map[string]*models.Reservation),
	}
}

func (f *fakeLedger) setRoomType(hotelID, code string, totalUnits int) {
	f.totals[hotelID+"|"+code] = totalUnits
}

func dayKeys(hotelID, code string, checkIn, checkOut time.Time) []string {
	keys := []string{}
	for day := checkIn; day.Before(checkOut); day = day.AddDate(0, 0, 1) {
		keys = append(keys, hotelID+"|"+code+"|"+day.Format("2006-01-02"))
	}
	return keys
}

func (f *fakeLedger) CheckAvailability(hotelID, roomTypeCode string, checkIn, checkOut time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	total, ok := f.totals[hotelID+"|"+roomTypeCode]
	if !ok {
		return 0, models.ErrRoomTypeNotFound
	}
	available := total
	for _, key := range dayKeys(hotelID, roomTypeCode, checkIn, checkOut) {
		if free := total - f.held[key]; free < available {
			available = free
		}
	}
	if available < 0 {
		available = 0
	}
	return available, nil
}

func (f *fakeLedger) Reserve(hotelID, roomTypeCode string, checkIn, checkOut time.Time, units int) (*models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.reserveErr != nil {
		return nil, f.reserveErr
	}
	total, ok := f.totals[hotelID+"|"+roomTypeCode]
	if !ok {
		return nil, models.ErrRoomTypeNotFound
	}

	keys := dayKeys(hotelID, roomTypeCode, checkIn, checkOut)
	for _, key := range keys {
		if f.held[key]+units > total {
			return nil, models.ErrCapacityExceeded
		}
	}
	for _, key := range keys {
		f.held[key] += units
	}

	reservation := &models.Reservation{
		ID:           uuid.New().String(),
		HotelID:      hotelID,
		RoomTypeCode: roomTypeCode,
		CheckIn:      checkIn,
		CheckOut:     checkOut,
		Units:        units,
		CreatedAt:    time.Now(),
	}
	f.reservations[reservation.ID] = reservation
	return reservation, nil
}

func (f *fakeLedger) Release(reservationID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.releaseCalls++
	reservation, ok := f.reservations[reservationID]
	if !ok || reservation.ReleasedAt != nil {
		return nil
	}
	for _, key := range dayKeys(reservation.HotelID, reservation.RoomTypeCode, reservation.CheckIn, reservation.CheckOut) {
		if f.held[key] >= reservation.Units {
			f.held[key] -= reservation.Units
		} else {
			f.held[key] = 0
		}
	}
	now := time.Now()
	reservation.ReleasedAt = &now
	return nil
}

// fakeBookingStore is an in-memory booking store
type fakeBookingStore struct {
	mu        sync.Mutex
	bookings  map[string]*models.Booking
	createErr error
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{bookings: make(map[string]*models.Booking)}
}

func (f *fakeBookingStore) Create(booking *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return f.createErr
	}
	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt
	copied := *booking
	f.bookings[booking.ID] = &copied
	return nil
}

func (f *fakeBookingStore) GetByID(bookingID string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	booking, ok := f.bookings[bookingID]
	if !ok {
		return nil, models.ErrBookingNotFound
	}
	copied := *booking
	return &copied, nil
}

func (f *fakeBookingStore) ListByUser(userID string) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	result := []models.Booking{}
	for _, booking := range f.bookings {
		if booking.GuestUserID == userID {
			result = append(result, *booking)
		}
	}
	return result, nil
}

func (f *fakeBookingStore) MarkCancelled(bookingID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	booking, ok := f.bookings[bookingID]
	if !ok || !booking.CanBeCancelled() {
		return models.ErrInvalidTransition
	}
	now := time.Now()
	booking.Status = models.BookingStatusCancelled
	booking.CancelledAt = &now
	return nil
}

func (f *fakeBookingStore) MarkCompleted(bookingID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	booking, ok := f.bookings[bookingID]
	if !ok || !booking.CanBeCompleted() {
		return models.ErrInvalidTransition
	}
	booking.Status = models.BookingStatusCompleted
	return nil
}

// fakeRoomTypeFinder resolves room types from a static map
type fakeRoomTypeFinder struct {
	roomTypes map[string]*models.RoomType
}

func (f *fakeRoomTypeFinder) GetRoomType(hotelID, code string) (*models.RoomType, error) {
	roomType, ok := f.roomTypes[hotelID+"|"+code]
	if !ok {
		return nil, models.ErrRoomTypeNotFound
	}
	return roomType, nil
}

type bookingFixture struct {
	service *BookingService
	ledger  *fakeLedger
	store   *fakeBookingStore
}

func newBookingFixture() *bookingFixture {
	ledger := newFakeLedger()
	ledger.setRoomType("hotel-1", "standard", 2)

	store := newFakeBookingStore()
	finder := &fakeRoomTypeFinder{roomTypes: map[string]*models.RoomType{
		"hotel-1|standard": {
			HotelID:      "hotel-1",
			Code:         "standard",
			Name:         "Standard",
			NightlyPrice: 299,
			TotalUnits:   2,
		},
	}}

	return &bookingFixture{
		service: NewBookingService(ledger, store, finder, DefaultBookingConfig(), testLogger()),
		ledger:  ledger,
		store:   store,
	}
}

func futureDate(days int) string {
	return time.Now().UTC().AddDate(0, 0, days).Format(validator.DateLayout)
}

func TestCreateBookingSuccess(t *testing.T) {
	fx := newBookingFixture()

	booking, err := fx.service.Create("user-1", &models.CreateBookingRequest{
		HotelID:      "hotel-1",
		RoomTypeCode: "standard",
		CheckIn:      futureDate(10),
		CheckOut:     futureDate(12),
		Units:        1,
	})
	require.NoError(t, err)

	assert.Equal(t, models.BookingStatusConfirmed, booking.Status)
	assert.Equal(t, "user-1", booking.GuestUserID)
	assert.Equal(t, 2, booking.Nights())
	assert.Equal(t, 299.0, booking.NightlyPrice)
	assert.Equal(t, 299.0*2, booking.TotalPrice)
	assert.NotEmpty(t, booking.ReservationID)

	stored, err := fx.store.GetByID(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.ReservationID, stored.ReservationID)
}

func TestCreateBookingValidation(t *testing.T) {
	t.Run("Past Check-In", func(t *testing.T) {
		fx := newBookingFixture()

		_, err := fx.service.Create("user-1", &models.CreateBookingRequest{
			HotelID:      "hotel-1",
			RoomTypeCode: "standard",
			CheckIn:      futureDate(-1),
			CheckOut:     futureDate(2),
		})
		require.Error(t, err)

		var dateErr *validator.DateError
		require.ErrorAs(t, err, &dateErr)
		assert.Equal(t, validator.CodePastCheckIn, dateErr.Code)

		// No inventory was touched
		assert.Empty(t, fx.ledger.reservations)
		assert.Empty(t, fx.store.bookings)
	})

	t.Run("Inverted Range", func(t *testing.T) {
		fx := newBookingFixture()

		_, err := fx.service.Create("user-1", &models.CreateBookingRequest{
			HotelID:      "hotel-1",
			RoomTypeCode: "standard",
			CheckIn:      futureDate(12),
			CheckOut:     futureDate(10),
		})
		require.Error(t, err)

		var dateErr *validator.DateError
		require.ErrorAs(t, err, &dateErr)
		assert.Equal(t, validator.CodeInvertedRange, dateErr.Code)
	})

	t.Run("Too Many Units", func(t *testing.T) {
		fx := newBookingFixture()

		_, err := fx.service.Create("user-1", &models.CreateBookingRequest{
			HotelID:      "hotel-1",
			RoomTypeCode: "standard",
			CheckIn:      futureDate(10),
			CheckOut:     futureDate(12),
			Units:        6,
		})
		assert.Error(t, err)
	})

	t.Run("Stay Too Long", func(t *testing.T) {
		fx := newBookingFixture()

		_, err := fx.service.Create("user-1", &models.CreateBookingRequest{
			HotelID:      "hotel-1",
			RoomTypeCode: "standard",
			CheckIn:      futureDate(10),
			CheckOut:     futureDate(10 + 31),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed 30 nights")
	})

	t.Run("Unknown Room Type", func(t *testing.T) {
		fx := newBookingFixture()

		_, err := fx.service.Create("user-1", &models.CreateBookingRequest{
			HotelID:      "hotel-1",
			RoomTypeCode: "penthouse",
			CheckIn:      futureDate(10),
			CheckOut:     futureDate(12),
		})
		assert.ErrorIs(t, err, models.ErrRoomTypeNotFound)
		assert.Empty(t, fx.ledger.reservations)
	})

	t.Run("Units Defaults To One", func(t *testing.T) {
		fx := newBookingFixture()

		booking, err := fx.service.Create("user-1", &models.CreateBookingRequest{
			HotelID:      "hotel-1",
			RoomTypeCode: "standard",
			CheckIn:      futureDate(10),
			CheckOut:     futureDate(11),
		})
		require.NoError(t, err)
		assert.Equal(t, 1, booking.Units)
	})
}

func TestCreateBookingReleasesOnInsertFailure(t *testing.T) {
	fx := newBookingFixture()
	fx.store.createErr = fmt.Errorf("insert failed")

	_, err := fx.service.Create("user-1", &models.CreateBookingRequest{
		HotelID:      "hotel-1",
		RoomTypeCode: "standard",
		CheckIn:      futureDate(10),
		CheckOut:     futureDate(12),
		Units:        2,
	})
	require.Error(t, err)

	// The reservation was compensated, so full capacity is available again
	checkIn, _ := validator.ParseDate(futureDate(10))
	checkOut, _ := validator.ParseDate(futureDate(12))
	available, err := fx.ledger.CheckAvailability("hotel-1", "standard", checkIn, checkOut)
	require.NoError(t, err)
	assert.Equal(t, 2, available)
	assert.Equal(t, 1, fx.ledger.releaseCalls)
}

func TestOverlappingBookingsShareCapacity(t *testing.T) {
	fx := newBookingFixture()

	// Both units for nights 10 and 11
	_, err := fx.service.Create("user-1", &models.CreateBookingRequest{
		HotelID:      "hotel-1",
		RoomTypeCode: "standard",
		CheckIn:      futureDate(10),
		CheckOut:     futureDate(12),
		Units:        2,
	})
	require.NoError(t, err)

	// Overlaps on night 11, so no unit is free there
	_, err = fx.service.Create("user-2", &models.CreateBookingRequest{
		HotelID:      "hotel-1",
		RoomTypeCode: "standard",
		CheckIn:      futureDate(11),
		CheckOut:     futureDate(13),
		Units:        1,
	})
	assert.ErrorIs(t, err, models.ErrCapacityExceeded)

	// A disjoint span is unaffected
	_, err = fx.service.Create("user-2", &models.CreateBookingRequest{
		HotelID:      "hotel-1",
		RoomTypeCode: "standard",
		CheckIn:      futureDate(12),
		CheckOut:     futureDate(14),
		Units:        1,
	})
	assert.NoError(t, err)
}

func TestParallelReservesNeverOversell(t *testing.T) {
	fx := newBookingFixture()
	const attempts = 20
	const capacity = 2

	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := fx.service.Create(fmt.Sprintf("user-%d", n), &models.CreateBookingRequest{
				HotelID:      "hotel-1",
				RoomTypeCode: "standard",
				CheckIn:      futureDate(10),
				CheckOut:     futureDate(12),
				Units:        1,
			})
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, models.ErrCapacityExceeded)
		}
	}
	assert.Equal(t, capacity, succeeded)

	checkIn, _ := validator.ParseDate(futureDate(10))
	checkOut, _ := validator.ParseDate(futureDate(12))
	available, err := fx.ledger.CheckAvailability("hotel-1", "standard", checkIn, checkOut)
	require.NoError(t, err)
	assert.Equal(t, 0, available)
}

func TestCancelBooking(t *testing.T) {
	t.Run("Success Frees Capacity", func(t *testing.T) {
		fx := newBookingFixture()

		booking, err := fx.service.Create("user-1", &models.CreateBookingRequest{
			HotelID:      "hotel-1",
			RoomTypeCode: "standard",
			CheckIn:      futureDate(10),
			CheckOut:     futureDate(12),
			Units:        2,
		})
		require.NoError(t, err)

		require.NoError(t, fx.service.Cancel(booking.ID, "user-1"))

		stored, err := fx.store.GetByID(booking.ID)
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusCancelled, stored.Status)
		assert.NotNil(t, stored.CancelledAt)

		// The span can be booked again
		_, err = fx.service.Create("user-2", &models.CreateBookingRequest{
			HotelID:      "hotel-1",
			RoomTypeCode: "standard",
			CheckIn:      futureDate(10),
			CheckOut:     futureDate(12),
			Units:        2,
		})
		assert.NoError(t, err)
	})

	t.Run("Wrong User", func(t *testing.T) {
		fx := newBookingFixture()

		booking, err := fx.service.Create("user-1", &models.CreateBookingRequest{
			HotelID:      "hotel-1",
			RoomTypeCode: "standard",
			CheckIn:      futureDate(10),
			CheckOut:     futureDate(12),
		})
		require.NoError(t, err)

		assert.ErrorIs(t, fx.service.Cancel(booking.ID, "intruder"), models.ErrForbidden)
	})

	t.Run("Double Cancel", func(t *testing.T) {
		fx := newBookingFixture()

		booking, err := fx.service.Create("user-1", &models.CreateBookingRequest{
			HotelID:      "hotel-1",
			RoomTypeCode: "standard",
			CheckIn:      futureDate(10),
			CheckOut:     futureDate(12),
		})
		require.NoError(t, err)

		require.NoError(t, fx.service.Cancel(booking.ID, "user-1"))
		assert.ErrorIs(t, fx.service.Cancel(booking.ID, "user-1"), models.ErrInvalidTransition)

		// The release stayed idempotent: capacity returned exactly once
		checkIn, _ := validator.ParseDate(futureDate(10))
		checkOut, _ := validator.ParseDate(futureDate(12))
		available, err := fx.ledger.CheckAvailability("hotel-1", "standard", checkIn, checkOut)
		require.NoError(t, err)
		assert.Equal(t, 2, available)
	})

	t.Run("Unknown Booking", func(t *testing.T) {
		fx := newBookingFixture()
		assert.ErrorIs(t, fx.service.Cancel("missing", "user-1"), models.ErrBookingNotFound)
	})
}

func TestCompleteBooking(t *testing.T) {
	fx := newBookingFixture()

	booking, err := fx.service.Create("user-1", &models.CreateBookingRequest{
		HotelID:      "hotel-1",
		RoomTypeCode: "standard",
		CheckIn:      futureDate(10),
		CheckOut:     futureDate(12),
	})
	require.NoError(t, err)

	require.NoError(t, fx.service.Complete(booking.ID))

	stored, err := fx.store.GetByID(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCompleted, stored.Status)

	// Completed bookings cannot be cancelled
	assert.ErrorIs(t, fx.service.Cancel(booking.ID, "user-1"), models.ErrInvalidTransition)
	// Or completed twice
	assert.ErrorIs(t, fx.service.Complete(booking.ID), models.ErrInvalidTransition)
}

func TestGetBookingScopedToGuest(t *testing.T) {
	fx := newBookingFixture()

	booking, err := fx.service.Create("user-1", &models.CreateBookingRequest{
		HotelID:      "hotel-1",
		RoomTypeCode: "standard",
		CheckIn:      futureDate(10),
		CheckOut:     futureDate(12),
	})
	require.NoError(t, err)

	got, err := fx.service.Get(booking.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, booking.ID, got.ID)

	_, err = fx.service.Get(booking.ID, "intruder")
	assert.ErrorIs(t, err, models.ErrForbidden)
}
