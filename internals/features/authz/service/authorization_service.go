package service

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	childModel "checkkid_backend/internals/features/children/child/model"
	relModel "checkkid_backend/internals/features/children/relationship/model"
	staffModel "checkkid_backend/internals/features/staff/model"
	userModel "checkkid_backend/internals/features/users/user/model"
	"checkkid_backend/internals/constants"
)

// AuthorizationService answers the named capability questions: can this user
// act on this child / kindergarten / group. Every check resolves role and
// relationship data fresh from the store — decisions are never cached, since
// both can change between requests. Any failed lookup (missing user, dangling
// profile id, unknown child) is a deny, never an error.
type AuthorizationService struct {
	DB *gorm.DB
}

func NewAuthorizationService(db *gorm.DB) *AuthorizationService {
	return &AuthorizationService{DB: db}
}

/* ===============================
   Scope predicates (building blocks)
=============================== */

// IsBossAt: BOSS whose staff profile belongs to the kindergarten.
func (s *AuthorizationService) IsBossAt(userID, kindergartenID uuid.UUID) bool {
	user, ok := s.getUser(userID)
	if !ok || user.Role != constants.RoleBoss {
		return false
	}
	staff, ok := s.getStaffProfile(user.ProfileID)
	return ok && staff.WorksAt(kindergartenID)
}

// IsStaffAt: STAFF or BOSS whose staff profile belongs to the kindergarten.
func (s *AuthorizationService) IsStaffAt(userID, kindergartenID uuid.UUID) bool {
	user, ok := s.getUser(userID)
	if !ok {
		return false
	}
	if user.Role != constants.RoleStaff && user.Role != constants.RoleBoss {
		return false
	}
	staff, ok := s.getStaffProfile(user.ProfileID)
	return ok && staff.WorksAt(kindergartenID)
}

// IsPrivilegedAt: BOSS at the kindergarten, or STAFF there with the admin
// flag. All management capabilities compose on this one predicate.
func (s *AuthorizationService) IsPrivilegedAt(userID, kindergartenID uuid.UUID) bool {
	user, ok := s.getUser(userID)
	if !ok {
		return false
	}

	switch user.Role {
	case constants.RoleBoss:
		staff, ok := s.getStaffProfile(user.ProfileID)
		return ok && staff.WorksAt(kindergartenID)
	case constants.RoleStaff:
		staff, ok := s.getStaffProfile(user.ProfileID)
		return ok && staff.IsAdmin && staff.WorksAt(kindergartenID)
	default:
		return false
	}
}

/* ===============================
   Child capabilities
=============================== */

// CanViewChild: parents through a relationship, staff through their
// kindergarten.
func (s *AuthorizationService) CanViewChild(userID, childID uuid.UUID) bool {
	user, ok := s.getUser(userID)
	if !ok {
		return false
	}
	child, ok := s.getChild(childID)
	if !ok {
		return false
	}

	switch user.Role {
	case constants.RoleParent:
		return user.ProfileID != nil && s.isParentOfChild(*user.ProfileID, childID)
	case constants.RoleStaff, constants.RoleBoss:
		if child.KindergartenID == nil {
			return false
		}
		return s.IsStaffAt(userID, *child.KindergartenID)
	default:
		return false
	}
}

// CanEditChild: privileged staff at the child's kindergarten. Parents never.
func (s *AuthorizationService) CanEditChild(userID, childID uuid.UUID) bool {
	user, ok := s.getUser(userID)
	if !ok || user.Role == constants.RoleParent {
		return false
	}
	child, ok := s.getChild(childID)
	if !ok || child.KindergartenID == nil {
		return false
	}
	return s.IsPrivilegedAt(userID, *child.KindergartenID)
}

// CanAddChild: any parent (registering their own child), otherwise privileged
// staff at the target kindergarten.
func (s *AuthorizationService) CanAddChild(userID, kindergartenID uuid.UUID) bool {
	user, ok := s.getUser(userID)
	if !ok {
		return false
	}
	if user.Role == constants.RoleParent {
		return true
	}
	return s.IsPrivilegedAt(userID, kindergartenID)
}

/* ===============================
   Presence capabilities
=============================== */

// CanCheckIn mirrors CanViewChild: whoever may see the child may drop
// them off.
func (s *AuthorizationService) CanCheckIn(userID, childID uuid.UUID) bool {
	return s.CanViewChild(userID, childID)
}

// CanCheckOut: staff at the child's kindergarten only. Parents are excluded
// unconditionally — releasing a child always takes a staff decision,
// whatever the relationship flags say.
func (s *AuthorizationService) CanCheckOut(userID, childID uuid.UUID) bool {
	user, ok := s.getUser(userID)
	if !ok || user.Role == constants.RoleParent {
		return false
	}
	child, ok := s.getChild(childID)
	if !ok || child.KindergartenID == nil {
		return false
	}
	return s.IsStaffAt(userID, *child.KindergartenID)
}

/* ===============================
   Health data capabilities
=============================== */

func (s *AuthorizationService) CanViewHealthData(userID, childID uuid.UUID) bool {
	return s.CanViewChild(userID, childID)
}

// CanEditHealthData: the child's own parents, or the boss of the child's
// kindergarten. Regular staff may read but not write.
func (s *AuthorizationService) CanEditHealthData(userID, childID uuid.UUID) bool {
	user, ok := s.getUser(userID)
	if !ok {
		return false
	}
	child, ok := s.getChild(childID)
	if !ok {
		return false
	}

	switch user.Role {
	case constants.RoleParent:
		return user.ProfileID != nil && s.isParentOfChild(*user.ProfileID, childID)
	case constants.RoleBoss:
		if child.KindergartenID == nil {
			return false
		}
		return s.IsBossAt(userID, *child.KindergartenID)
	default:
		return false
	}
}

/* ===============================
   Organization capabilities
=============================== */

func (s *AuthorizationService) CanManageGroups(userID, kindergartenID uuid.UUID) bool {
	return s.IsPrivilegedAt(userID, kindergartenID)
}

func (s *AuthorizationService) CanAssignStaff(userID, kindergartenID uuid.UUID) bool {
	return s.IsBossAt(userID, kindergartenID)
}

func (s *AuthorizationService) CanManageStaff(userID, kindergartenID uuid.UUID) bool {
	return s.IsBossAt(userID, kindergartenID)
}

func (s *AuthorizationService) CanEditKindergarten(userID, kindergartenID uuid.UUID) bool {
	return s.IsBossAt(userID, kindergartenID)
}

func (s *AuthorizationService) CanAddNotes(userID, kindergartenID uuid.UUID) bool {
	return s.IsStaffAt(userID, kindergartenID)
}

/* ===============================
   Lookups
=============================== */

func (s *AuthorizationService) getUser(userID uuid.UUID) (*userModel.UserModel, bool) {
	var user userModel.UserModel
	if err := s.DB.Select("id, role, profile_id, is_active").
		First(&user, "id = ?", userID).Error; err != nil {
		return nil, false
	}
	if !user.IsActive {
		return nil, false
	}
	return &user, true
}

func (s *AuthorizationService) getStaffProfile(profileID *uuid.UUID) (*staffModel.StaffModel, bool) {
	if profileID == nil || *profileID == uuid.Nil {
		return nil, false
	}
	var staff staffModel.StaffModel
	if err := s.DB.Select("id, kindergarten_id, is_admin").
		First(&staff, "id = ?", *profileID).Error; err != nil {
		return nil, false
	}
	return &staff, true
}

func (s *AuthorizationService) getChild(childID uuid.UUID) (*childModel.ChildModel, bool) {
	var child childModel.ChildModel
	if err := s.DB.Select("id, kindergarten_id").
		First(&child, "id = ?", childID).Error; err != nil {
		return nil, false
	}
	return &child, true
}

// isParentOfChild is the RelationshipIndex lookup: does a relationship row
// exist for (parent profile, child).
func (s *AuthorizationService) isParentOfChild(parentID, childID uuid.UUID) bool {
	var count int64
	if err := s.DB.Model(&relModel.ParentChildModel{}).
		Where("parent_id = ? AND child_id = ?", parentID, childID).
		Count(&count).Error; err != nil {
		return false
	}
	return count > 0
}
