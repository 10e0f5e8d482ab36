package service

import (
	"context"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"checkkid_backend/internals/constants"
	"checkkid_backend/internals/features/absences/dto"
	"checkkid_backend/internals/features/absences/model"
	childModel "checkkid_backend/internals/features/children/child/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&childModel.ChildModel{}, &model.AbsenceModel{}))
	return db
}

func seedChild(t *testing.T, db *gorm.DB) childModel.ChildModel {
	t.Helper()
	child := childModel.ChildModel{FirstName: "Jonas", LastName: "Holm"}
	require.NoError(t, db.Create(&child).Error)
	return child
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func requireFiberStatus(t *testing.T, err error, status int) {
	t.Helper()
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, status, fe.Code)
}

func TestCreateUnknownChild(t *testing.T) {
	db := newTestDB(t)
	svc := NewAbsenceService(db)

	_, err := svc.Create(context.Background(), dto.CreateAbsenceRequest{
		ChildID:   uuid.New(),
		StartDate: day(2026, 9, 1),
		EndDate:   day(2026, 9, 2),
		Type:      "PLANNED",
	}, uuid.New(), constants.PersonTypeParent)
	requireFiberStatus(t, err, fiber.StatusNotFound)
}

func TestCreateEndBeforeStart(t *testing.T) {
	db := newTestDB(t)
	svc := NewAbsenceService(db)
	child := seedChild(t, db)

	_, err := svc.Create(context.Background(), dto.CreateAbsenceRequest{
		ChildID:   child.ID,
		StartDate: day(2026, 9, 5),
		EndDate:   day(2026, 9, 1),
		Type:      "PLANNED",
	}, uuid.New(), constants.PersonTypeParent)
	requireFiberStatus(t, err, fiber.StatusBadRequest)
}

func TestCreateSingleDayInterval(t *testing.T) {
	db := newTestDB(t)
	svc := NewAbsenceService(db)
	child := seedChild(t, db)

	absence, err := svc.Create(context.Background(), dto.CreateAbsenceRequest{
		ChildID:   child.ID,
		StartDate: day(2026, 9, 1),
		EndDate:   day(2026, 9, 1),
		Type:      "PLANNED",
	}, uuid.New(), constants.PersonTypeParent)
	require.NoError(t, err)
	assert.Equal(t, model.AbsenceStatusPending, absence.Status)
}

func TestAutoApproval(t *testing.T) {
	cases := []struct {
		name         string
		reporterType string
		absenceType  string
		want         model.AbsenceStatus
	}{
		{"parent planned stays pending", constants.PersonTypeParent, "PLANNED", model.AbsenceStatusPending},
		{"parent unplanned auto-approves", constants.PersonTypeParent, "UNPLANNED", model.AbsenceStatusApproved},
		{"staff planned auto-approves", constants.PersonTypeStaff, "PLANNED", model.AbsenceStatusApproved},
		{"staff unplanned auto-approves", constants.PersonTypeStaff, "UNPLANNED", model.AbsenceStatusApproved},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db := newTestDB(t)
			svc := NewAbsenceService(db)
			child := seedChild(t, db)

			absence, err := svc.Create(context.Background(), dto.CreateAbsenceRequest{
				ChildID:   child.ID,
				StartDate: day(2026, 9, 1),
				EndDate:   day(2026, 9, 3),
				Type:      tc.absenceType,
			}, uuid.New(), tc.reporterType)
			require.NoError(t, err)

			assert.Equal(t, tc.want, absence.Status)
			// auto-approval is not a staff decision
			assert.Nil(t, absence.ApprovedByStaff)
			assert.Nil(t, absence.ApprovedAt)
		})
	}
}

func TestApproveRecordsDecision(t *testing.T) {
	db := newTestDB(t)
	svc := NewAbsenceService(db)
	child := seedChild(t, db)
	ctx := context.Background()

	absence, err := svc.Create(ctx, dto.CreateAbsenceRequest{
		ChildID:   child.ID,
		StartDate: day(2026, 9, 1),
		EndDate:   day(2026, 9, 3),
		Type:      "PLANNED",
	}, uuid.New(), constants.PersonTypeParent)
	require.NoError(t, err)

	staffID := uuid.New()
	approved, err := svc.Approve(ctx, absence.ID, staffID)
	require.NoError(t, err)

	assert.Equal(t, model.AbsenceStatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedByStaff)
	assert.Equal(t, staffID, *approved.ApprovedByStaff)
	assert.NotNil(t, approved.ApprovedAt)
}

func TestDecisionsAreRedecidable(t *testing.T) {
	db := newTestDB(t)
	svc := NewAbsenceService(db)
	child := seedChild(t, db)
	ctx := context.Background()

	absence, err := svc.Create(ctx, dto.CreateAbsenceRequest{
		ChildID:   child.ID,
		StartDate: day(2026, 9, 1),
		EndDate:   day(2026, 9, 3),
		Type:      "PLANNED",
	}, uuid.New(), constants.PersonTypeParent)
	require.NoError(t, err)

	first := uuid.New()
	second := uuid.New()

	_, err = svc.Reject(ctx, absence.ID, first)
	require.NoError(t, err)

	// last decision wins
	redecided, err := svc.Approve(ctx, absence.ID, second)
	require.NoError(t, err)
	assert.Equal(t, model.AbsenceStatusApproved, redecided.Status)
	require.NotNil(t, redecided.ApprovedByStaff)
	assert.Equal(t, second, *redecided.ApprovedByStaff)
}

func TestDecideUnknownAbsence(t *testing.T) {
	db := newTestDB(t)
	svc := NewAbsenceService(db)

	_, err := svc.Approve(context.Background(), uuid.New(), uuid.New())
	requireFiberStatus(t, err, fiber.StatusNotFound)
}

func TestByChildAndRange(t *testing.T) {
	db := newTestDB(t)
	svc := NewAbsenceService(db)
	child := seedChild(t, db)
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.CreateAbsenceRequest{
		ChildID:   child.ID,
		StartDate: day(2026, 9, 10),
		EndDate:   day(2026, 9, 12),
		Type:      "PLANNED",
	}, uuid.New(), constants.PersonTypeStaff)
	require.NoError(t, err)

	// touching on the boundary counts as overlap
	overlapping, err := svc.ByChildAndRange(ctx, child.ID, day(2026, 9, 12), day(2026, 9, 14))
	require.NoError(t, err)
	assert.Len(t, overlapping, 1)

	disjoint, err := svc.ByChildAndRange(ctx, child.ID, day(2026, 9, 13), day(2026, 9, 14))
	require.NoError(t, err)
	assert.Empty(t, disjoint)
}

func TestIsChildAbsentOnDate(t *testing.T) {
	db := newTestDB(t)
	svc := NewAbsenceService(db)
	child := seedChild(t, db)
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.CreateAbsenceRequest{
		ChildID:   child.ID,
		StartDate: day(2026, 9, 10),
		EndDate:   day(2026, 9, 12),
		Type:      "UNPLANNED",
	}, uuid.New(), constants.PersonTypeParent)
	require.NoError(t, err)

	absent, err := svc.IsChildAbsentOnDate(ctx, child.ID, day(2026, 9, 11))
	require.NoError(t, err)
	assert.True(t, absent)

	absent, err = svc.IsChildAbsentOnDate(ctx, child.ID, day(2026, 9, 13))
	require.NoError(t, err)
	assert.False(t, absent)
}

func TestDelete(t *testing.T) {
	db := newTestDB(t)
	svc := NewAbsenceService(db)
	child := seedChild(t, db)
	ctx := context.Background()

	absence, err := svc.Create(ctx, dto.CreateAbsenceRequest{
		ChildID:   child.ID,
		StartDate: day(2026, 9, 1),
		EndDate:   day(2026, 9, 2),
		Type:      "PLANNED",
	}, uuid.New(), constants.PersonTypeParent)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, absence.ID))

	err = svc.Delete(ctx, absence.ID)
	requireFiberStatus(t, err, fiber.StatusNotFound)
}
