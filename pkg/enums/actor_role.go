package enums

// ActorRole identifies the backoffice actor class carried in access tokens.
type ActorRole string

const (
	RoleAdmin ActorRole = "admin"
	RoleOps   ActorRole = "ops"
)

var validActorRoles = []ActorRole{RoleAdmin, RoleOps}

func (r ActorRole) String() string {
	return string(r)
}

func (r ActorRole) IsValid() bool {
	for _, v := range validActorRoles {
		if r == v {
			return true
		}
	}
	return false
}

// CanManage reports whether the role may mutate consolidation state
// (open/close cycles, assign tracking, change settings).
func (r ActorRole) CanManage() bool {
	return r == RoleAdmin
}

func ParseActorRole(value string) (ActorRole, bool) {
	role := ActorRole(value)
	return role, role.IsValid()
}
