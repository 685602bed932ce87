package domain

type Role string

const (
	RoleApplicant  Role = "applicant"
	RoleOfficer    Role = "officer"
	RoleSupervisor Role = "supervisor"
	RoleAdmin      Role = "admin"
)

// Transition names a state-changing action on an application. Permissions are
// declared once in transitionPolicy instead of re-checked inline per action, so
// a role change is a one-line edit.
type Transition string

const (
	TransitionVerifyPayment  Transition = "verify_payment"
	TransitionRejectPayment  Transition = "reject_payment"
	TransitionApprove        Transition = "approve"
	TransitionReject         Transition = "reject"
	TransitionUpdateStatus   Transition = "update_status"
	TransitionViewStatistics Transition = "view_statistics"
)

var transitionPolicy = map[Transition][]Role{
	TransitionVerifyPayment:  {RoleAdmin, RoleSupervisor},
	TransitionRejectPayment:  {RoleAdmin, RoleSupervisor},
	TransitionApprove:        {RoleAdmin, RoleSupervisor},
	TransitionReject:         {RoleAdmin, RoleSupervisor},
	TransitionUpdateStatus:   {RoleAdmin, RoleOfficer, RoleSupervisor},
	TransitionViewStatistics: {RoleAdmin, RoleOfficer, RoleSupervisor},
}

// Allowed reports whether role may perform t.
func Allowed(role Role, t Transition) bool {
	for _, r := range transitionPolicy[t] {
		if r == role {
			return true
		}
	}
	return false
}

// IsStaff reports whether role may see applications it does not own.
func IsStaff(role Role) bool {
	switch role {
	case RoleAdmin, RoleOfficer, RoleSupervisor:
		return true
	}
	return false
}
