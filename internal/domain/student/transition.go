package student

import (
	"edupay-backend/internal/domain/actor"
	"edupay-backend/pkg/fault"
)

// The prospect lifecycle is strictly forward:
//
//	registered → proposal_sent → payment_under_review → enrolled
//
// Each edge is owned by exactly one role. Anything off the table is rejected;
// skipping stages or moving backward is never allowed, regardless of role.
type transition struct {
	From ProspectStatus
	To   ProspectStatus
}

var transitionTable = map[transition]actor.Role{
	{StatusRegistered, StatusProposalSent}:         actor.RoleSalesAdvisor,
	{StatusProposalSent, StatusPaymentUnderReview}: actor.RoleProspect,
	{StatusPaymentUnderReview, StatusEnrolled}:     actor.RoleCashier,
}

// CanTransition reports whether role may move a prospect from → to. The error
// distinguishes an impossible edge (conflict) from a wrong actor (authz) so
// callers surface the right message.
func CanTransition(from, to ProspectStatus, role actor.Role) error {
	owner, ok := transitionTable[transition{from, to}]
	if !ok {
		return fault.Newf(fault.KindConflict, "prospect status cannot move from %q to %q", from, to)
	}
	if role != owner {
		return fault.Newf(fault.KindAuthorization, "role %q may not move prospect status from %q to %q (requires %q)", role, from, to, owner)
	}
	return nil
}
