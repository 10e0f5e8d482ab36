package service

import (
	"context"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	childModel "checkkid_backend/internals/features/children/child/model"
	"checkkid_backend/internals/features/presence/dto"
	"checkkid_backend/internals/features/presence/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// a single connection keeps the in-memory DB alive across queries
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&childModel.ChildModel{}, &model.CheckInOutModel{}))

	// same guard database.EnsureIndexes creates in production
	require.NoError(t, db.Exec(`CREATE UNIQUE INDEX uq_check_in_out_open_child
		ON check_in_out_log (child_id) WHERE check_out_time IS NULL`).Error)

	return db
}

func seedChild(t *testing.T, db *gorm.DB, kindergartenID *uuid.UUID) childModel.ChildModel {
	t.Helper()
	child := childModel.ChildModel{
		FirstName:      "Mila",
		LastName:       "Berg",
		KindergartenID: kindergartenID,
	}
	require.NoError(t, db.Create(&child).Error)
	return child
}

func strPtr(s string) *string { return &s }

func requireFiberStatus(t *testing.T, err error, status int) {
	t.Helper()
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, status, fe.Code)
}

func TestCheckInOpensSession(t *testing.T) {
	db := newTestDB(t)
	svc := NewPresenceService(db)
	child := seedChild(t, db, nil)

	session, err := svc.CheckIn(context.Background(), dto.CheckInRequest{
		ChildID:          child.ID,
		DroppedOffByType: "PARENT",
	}, nil)
	require.NoError(t, err)
	require.NotNil(t, session)

	assert.NotEqual(t, uuid.Nil, session.ID)
	assert.True(t, session.IsOpen())
	assert.Nil(t, session.CheckInConfirmedByStaff)

	var fresh childModel.ChildModel
	require.NoError(t, db.First(&fresh, "id = ?", child.ID).Error)
	assert.True(t, fresh.CheckedIn)
}

func TestCheckInWhileAlreadyCheckedIn(t *testing.T) {
	db := newTestDB(t)
	svc := NewPresenceService(db)
	child := seedChild(t, db, nil)
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, dto.CheckInRequest{ChildID: child.ID, DroppedOffByType: "PARENT"}, nil)
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx, dto.CheckInRequest{ChildID: child.ID, DroppedOffByType: "STAFF"}, nil)
	requireFiberStatus(t, err, fiber.StatusConflict)

	// only the first session exists
	var count int64
	require.NoError(t, db.Model(&model.CheckInOutModel{}).Where("child_id = ?", child.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCheckOutWithoutOpenSession(t *testing.T) {
	db := newTestDB(t)
	svc := NewPresenceService(db)
	child := seedChild(t, db, nil)

	_, err := svc.CheckOut(context.Background(), dto.CheckOutRequest{
		ChildID:        child.ID,
		PickedUpByType: "PARENT",
	}, nil)
	requireFiberStatus(t, err, fiber.StatusNotFound)

	var count int64
	require.NoError(t, db.Model(&model.CheckInOutModel{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestCheckOutClosesSession(t *testing.T) {
	db := newTestDB(t)
	svc := NewPresenceService(db)
	child := seedChild(t, db, nil)
	ctx := context.Background()
	staffID := uuid.New()

	_, err := svc.CheckIn(ctx, dto.CheckInRequest{
		ChildID:          child.ID,
		DroppedOffByType: "PARENT",
		Notes:            strPtr("a bit sleepy this morning"),
	}, nil)
	require.NoError(t, err)

	session, err := svc.CheckOut(ctx, dto.CheckOutRequest{
		ChildID:           child.ID,
		PickedUpByType:    "OTHER",
		PickedUpByName:    strPtr("Grandma Inge"),
		PickedUpConfirmed: true,
		Notes:             strPtr("early pickup, doctor appointment"),
	}, &staffID)
	require.NoError(t, err)

	assert.False(t, session.IsOpen())
	require.NotNil(t, session.PickedUpByType)
	assert.Equal(t, "OTHER", *session.PickedUpByType)
	assert.Equal(t, &staffID, session.CheckOutApprovedByStaff)
	assert.True(t, session.IDVerified)
	require.NotNil(t, session.Notes)
	assert.Equal(t, "a bit sleepy this morning | early pickup, doctor appointment", *session.Notes)

	var fresh childModel.ChildModel
	require.NoError(t, db.First(&fresh, "id = ?", child.ID).Error)
	assert.False(t, fresh.CheckedIn)
}

func TestCheckInAgainAfterCheckOut(t *testing.T) {
	db := newTestDB(t)
	svc := NewPresenceService(db)
	child := seedChild(t, db, nil)
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, dto.CheckInRequest{ChildID: child.ID, DroppedOffByType: "PARENT"}, nil)
	require.NoError(t, err)
	_, err = svc.CheckOut(ctx, dto.CheckOutRequest{ChildID: child.ID, PickedUpByType: "PARENT"}, nil)
	require.NoError(t, err)

	// closed sessions never reopen; a fresh one starts instead
	second, err := svc.CheckIn(ctx, dto.CheckInRequest{ChildID: child.ID, DroppedOffByType: "PARENT"}, nil)
	require.NoError(t, err)
	assert.True(t, second.IsOpen())

	history, err := svc.History(ctx, child.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestConfirmCheckInIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewPresenceService(db)
	child := seedChild(t, db, nil)
	ctx := context.Background()

	session, err := svc.CheckIn(ctx, dto.CheckInRequest{ChildID: child.ID, DroppedOffByType: "PARENT"}, nil)
	require.NoError(t, err)

	staff1 := uuid.New()
	staff2 := uuid.New()

	confirmed, err := svc.ConfirmCheckIn(ctx, session.ID, staff1)
	require.NoError(t, err)
	require.NotNil(t, confirmed.CheckInConfirmedByStaff)
	assert.Equal(t, staff1, *confirmed.CheckInConfirmedByStaff)

	// second confirmation keeps the first confirmer
	confirmed, err = svc.ConfirmCheckIn(ctx, session.ID, staff2)
	require.NoError(t, err)
	require.NotNil(t, confirmed.CheckInConfirmedByStaff)
	assert.Equal(t, staff1, *confirmed.CheckInConfirmedByStaff)
}

func TestConfirmCheckInUnknownSession(t *testing.T) {
	db := newTestDB(t)
	svc := NewPresenceService(db)

	_, err := svc.ConfirmCheckIn(context.Background(), uuid.New(), uuid.New())
	requireFiberStatus(t, err, fiber.StatusNotFound)
}

func TestActiveSession(t *testing.T) {
	db := newTestDB(t)
	svc := NewPresenceService(db)
	child := seedChild(t, db, nil)
	ctx := context.Background()

	session, err := svc.ActiveSession(ctx, child.ID)
	require.NoError(t, err)
	assert.Nil(t, session)

	_, err = svc.CheckIn(ctx, dto.CheckInRequest{ChildID: child.ID, DroppedOffByType: "PARENT"}, nil)
	require.NoError(t, err)

	session, err = svc.ActiveSession(ctx, child.ID)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, child.ID, session.ChildID)
}

func TestPendingConfirmations(t *testing.T) {
	db := newTestDB(t)
	svc := NewPresenceService(db)
	ctx := context.Background()

	k1 := uuid.New()
	k2 := uuid.New()
	unconfirmed := seedChild(t, db, &k1)
	confirmed := seedChild(t, db, &k1)
	elsewhere := seedChild(t, db, &k2)

	staffID := uuid.New()
	_, err := svc.CheckIn(ctx, dto.CheckInRequest{ChildID: unconfirmed.ID, DroppedOffByType: "PARENT"}, nil)
	require.NoError(t, err)
	_, err = svc.CheckIn(ctx, dto.CheckInRequest{ChildID: confirmed.ID, DroppedOffByType: "PARENT"}, &staffID)
	require.NoError(t, err)
	_, err = svc.CheckIn(ctx, dto.CheckInRequest{ChildID: elsewhere.ID, DroppedOffByType: "PARENT"}, nil)
	require.NoError(t, err)

	pending, err := svc.PendingConfirmations(ctx, k1)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, unconfirmed.ID, pending[0].ChildID)
}
