package service

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"checkkid_backend/internals/constants"
	childModel "checkkid_backend/internals/features/children/child/model"
	relModel "checkkid_backend/internals/features/children/relationship/model"
	parentModel "checkkid_backend/internals/features/parents/model"
	staffModel "checkkid_backend/internals/features/staff/model"
	userModel "checkkid_backend/internals/features/users/user/model"
)

// fixture is one kindergarten world: a boss, an admin staff, a regular
// staff, a parent with one child, and one unrelated child.
type fixture struct {
	db *gorm.DB

	kindergartenID uuid.UUID

	bossUser   uuid.UUID
	adminUser  uuid.UUID
	staffUser  uuid.UUID
	parentUser uuid.UUID

	parentProfile uuid.UUID

	ownChild   uuid.UUID // related to parentProfile
	otherChild uuid.UUID // enrolled, but no relationship
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&userModel.UserModel{},
		&parentModel.ParentModel{},
		&staffModel.StaffModel{},
		&childModel.ChildModel{},
		&relModel.ParentChildModel{},
	))
	return db
}

var userSeq int

func seedUser(t *testing.T, db *gorm.DB, role string, profileID *uuid.UUID, active bool) uuid.UUID {
	t.Helper()
	userSeq++
	user := userModel.UserModel{
		OpenIDSubject: fmt.Sprintf("sub-%d", userSeq),
		Email:         fmt.Sprintf("user%d@example.com", userSeq),
		Name:          "Test User",
		Role:          role,
		ProfileID:     profileID,
		IsActive:      active,
	}
	require.NoError(t, db.Create(&user).Error)
	return user.ID
}

func seedStaff(t *testing.T, db *gorm.DB, kindergartenID uuid.UUID, isAdmin bool) uuid.UUID {
	t.Helper()
	userSeq++
	staff := staffModel.StaffModel{
		FirstName:      "Staff",
		LastName:       "Member",
		Email:          fmt.Sprintf("staff%d@example.com", userSeq),
		IsAdmin:        isAdmin,
		KindergartenID: &kindergartenID,
	}
	require.NoError(t, db.Create(&staff).Error)
	return staff.ID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)

	f := &fixture{db: db, kindergartenID: uuid.New()}

	bossProfile := seedStaff(t, db, f.kindergartenID, true)
	adminProfile := seedStaff(t, db, f.kindergartenID, true)
	staffProfile := seedStaff(t, db, f.kindergartenID, false)

	f.bossUser = seedUser(t, db, constants.RoleBoss, &bossProfile, true)
	f.adminUser = seedUser(t, db, constants.RoleStaff, &adminProfile, true)
	f.staffUser = seedUser(t, db, constants.RoleStaff, &staffProfile, true)

	parent := parentModel.ParentModel{FirstName: "Eva", LastName: "Lund", Email: "eva@example.com"}
	require.NoError(t, db.Create(&parent).Error)
	f.parentProfile = parent.ID
	f.parentUser = seedUser(t, db, constants.RoleParent, &parent.ID, true)

	own := childModel.ChildModel{FirstName: "Ida", LastName: "Lund", KindergartenID: &f.kindergartenID}
	require.NoError(t, db.Create(&own).Error)
	f.ownChild = own.ID

	other := childModel.ChildModel{FirstName: "Leo", LastName: "Falk", KindergartenID: &f.kindergartenID}
	require.NoError(t, db.Create(&other).Error)
	f.otherChild = other.ID

	require.NoError(t, db.Create(&relModel.ParentChildModel{
		ParentID: f.parentProfile,
		ChildID:  f.ownChild,
	}).Error)

	return f
}

func TestScopePredicates(t *testing.T) {
	f := newFixture(t)
	svc := NewAuthorizationService(f.db)
	elsewhere := uuid.New()

	assert.True(t, svc.IsBossAt(f.bossUser, f.kindergartenID))
	assert.False(t, svc.IsBossAt(f.bossUser, elsewhere))
	assert.False(t, svc.IsBossAt(f.adminUser, f.kindergartenID))
	assert.False(t, svc.IsBossAt(f.staffUser, f.kindergartenID))
	assert.False(t, svc.IsBossAt(f.parentUser, f.kindergartenID))

	assert.True(t, svc.IsStaffAt(f.bossUser, f.kindergartenID))
	assert.True(t, svc.IsStaffAt(f.adminUser, f.kindergartenID))
	assert.True(t, svc.IsStaffAt(f.staffUser, f.kindergartenID))
	assert.False(t, svc.IsStaffAt(f.staffUser, elsewhere))
	assert.False(t, svc.IsStaffAt(f.parentUser, f.kindergartenID))

	assert.True(t, svc.IsPrivilegedAt(f.bossUser, f.kindergartenID))
	assert.True(t, svc.IsPrivilegedAt(f.adminUser, f.kindergartenID))
	assert.False(t, svc.IsPrivilegedAt(f.staffUser, f.kindergartenID))
	assert.False(t, svc.IsPrivilegedAt(f.parentUser, f.kindergartenID))
}

func TestCanViewChild(t *testing.T) {
	f := newFixture(t)
	svc := NewAuthorizationService(f.db)

	// parent: only through a relationship
	assert.True(t, svc.CanViewChild(f.parentUser, f.ownChild))
	assert.False(t, svc.CanViewChild(f.parentUser, f.otherChild))

	// staff: any child of their kindergarten
	assert.True(t, svc.CanViewChild(f.staffUser, f.ownChild))
	assert.True(t, svc.CanViewChild(f.staffUser, f.otherChild))
	assert.True(t, svc.CanViewChild(f.bossUser, f.otherChild))

	// staff from another kindergarten sees nothing here
	otherK := uuid.New()
	outsiderProfile := seedStaff(t, f.db, otherK, false)
	outsider := seedUser(t, f.db, constants.RoleStaff, &outsiderProfile, true)
	assert.False(t, svc.CanViewChild(outsider, f.ownChild))

	// unknown actors and unknown children are denied
	assert.False(t, svc.CanViewChild(uuid.New(), f.ownChild))
	assert.False(t, svc.CanViewChild(f.staffUser, uuid.New()))
}

func TestCanEditChild(t *testing.T) {
	f := newFixture(t)
	svc := NewAuthorizationService(f.db)

	assert.True(t, svc.CanEditChild(f.bossUser, f.ownChild))
	assert.True(t, svc.CanEditChild(f.adminUser, f.ownChild))
	assert.False(t, svc.CanEditChild(f.staffUser, f.ownChild))

	// parents never edit, their own child included
	assert.False(t, svc.CanEditChild(f.parentUser, f.ownChild))
}

func TestPresenceCapabilities(t *testing.T) {
	f := newFixture(t)
	svc := NewAuthorizationService(f.db)

	// drop-off follows view scope
	assert.True(t, svc.CanCheckIn(f.parentUser, f.ownChild))
	assert.False(t, svc.CanCheckIn(f.parentUser, f.otherChild))
	assert.True(t, svc.CanCheckIn(f.staffUser, f.otherChild))

	// pickup release is staff-only, even for the child's own parent
	assert.False(t, svc.CanCheckOut(f.parentUser, f.ownChild))
	assert.True(t, svc.CanCheckOut(f.staffUser, f.ownChild))
	assert.True(t, svc.CanCheckOut(f.bossUser, f.ownChild))
}

func TestHealthDataCapabilities(t *testing.T) {
	f := newFixture(t)
	svc := NewAuthorizationService(f.db)

	assert.True(t, svc.CanViewHealthData(f.parentUser, f.ownChild))
	assert.True(t, svc.CanViewHealthData(f.staffUser, f.ownChild))

	// write: the child's parent or the boss; plain staff read only
	assert.True(t, svc.CanEditHealthData(f.parentUser, f.ownChild))
	assert.True(t, svc.CanEditHealthData(f.bossUser, f.ownChild))
	assert.False(t, svc.CanEditHealthData(f.staffUser, f.ownChild))
	assert.False(t, svc.CanEditHealthData(f.adminUser, f.ownChild))
	assert.False(t, svc.CanEditHealthData(f.parentUser, f.otherChild))
}

func TestManagementCapabilities(t *testing.T) {
	f := newFixture(t)
	svc := NewAuthorizationService(f.db)

	assert.True(t, svc.CanManageGroups(f.bossUser, f.kindergartenID))
	assert.True(t, svc.CanManageGroups(f.adminUser, f.kindergartenID))
	assert.False(t, svc.CanManageGroups(f.staffUser, f.kindergartenID))

	for _, check := range []func(uuid.UUID, uuid.UUID) bool{
		svc.CanAssignStaff, svc.CanManageStaff, svc.CanEditKindergarten,
	} {
		assert.True(t, check(f.bossUser, f.kindergartenID))
		assert.False(t, check(f.adminUser, f.kindergartenID))
		assert.False(t, check(f.staffUser, f.kindergartenID))
		assert.False(t, check(f.parentUser, f.kindergartenID))
	}

	assert.True(t, svc.CanAddNotes(f.staffUser, f.kindergartenID))
	assert.False(t, svc.CanAddNotes(f.parentUser, f.kindergartenID))
}

func TestDeactivatedUserIsDenied(t *testing.T) {
	f := newFixture(t)
	svc := NewAuthorizationService(f.db)

	profile := seedStaff(t, f.db, f.kindergartenID, true)
	inactive := seedUser(t, f.db, constants.RoleBoss, &profile, false)

	assert.False(t, svc.IsBossAt(inactive, f.kindergartenID))
	assert.False(t, svc.CanViewChild(inactive, f.ownChild))
}

func TestDanglingProfileIsDenied(t *testing.T) {
	f := newFixture(t)
	svc := NewAuthorizationService(f.db)

	// role says staff, but the profile row does not exist
	ghost := uuid.New()
	user := seedUser(t, f.db, constants.RoleStaff, &ghost, true)

	assert.False(t, svc.IsStaffAt(user, f.kindergartenID))
	assert.False(t, svc.CanViewChild(user, f.ownChild))
}

func TestCanAddChild(t *testing.T) {
	f := newFixture(t)
	svc := NewAuthorizationService(f.db)

	// any parent may register a child
	assert.True(t, svc.CanAddChild(f.parentUser, f.kindergartenID))
	assert.True(t, svc.CanAddChild(f.parentUser, uuid.New()))

	assert.True(t, svc.CanAddChild(f.bossUser, f.kindergartenID))
	assert.True(t, svc.CanAddChild(f.adminUser, f.kindergartenID))
	assert.False(t, svc.CanAddChild(f.staffUser, f.kindergartenID))
	assert.False(t, svc.CanAddChild(f.bossUser, uuid.New()))
}

func TestRelationshipUniqueness(t *testing.T) {
	f := newFixture(t)

	// the unique index database.EnsureIndexes creates in production
	require.NoError(t, f.db.Exec(`CREATE UNIQUE INDEX uq_parent_child_relationship
		ON parent_child_relationships (parent_id, child_id)`).Error)

	err := f.db.Create(&relModel.ParentChildModel{
		ParentID: f.parentProfile,
		ChildID:  f.ownChild,
	}).Error
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNIQUE constraint")
}
