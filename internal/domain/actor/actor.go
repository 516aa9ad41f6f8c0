// Package actor defines the role tokens the core receives from the identity
// layer. The core never resolves identity itself.
package actor

type Role string

const (
	RoleAdmin        Role = "admin"
	RoleSalesAdvisor Role = "sales-advisor"
	RoleCashier      Role = "cashier"
	// RoleProspect is the student themself, prior to enrollment.
	RoleProspect Role = "prospect"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSalesAdvisor, RoleCashier, RoleProspect:
		return true
	}
	return false
}
