package access

import "github.com/AhmedSalahALghzaly/lats-go/pkg/enums"

// Action names an operation class on a resource.
type Action string

const (
	ActionList   Action = "list"
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

type rule struct {
	Resource string
	Action   Action
}

// policy is the single source of truth for role gating. A missing entry
// means the route is open to any caller, including guests. Handlers still
// enforce per-row ownership for user-scoped data.
var policy = map[rule][]enums.Role{
	{"partners", ActionList}:   {enums.RoleOwner, enums.RolePartner},
	{"partners", ActionCreate}: {enums.RoleOwner},
	{"partners", ActionDelete}: {enums.RoleOwner},

	{"admins", ActionList}:   {enums.RoleOwner, enums.RolePartner},
	{"admins", ActionCreate}: {enums.RoleOwner, enums.RolePartner},
	{"admins", ActionUpdate}: {enums.RoleOwner, enums.RolePartner},
	{"admins", ActionDelete}: {enums.RoleOwner, enums.RolePartner},

	{"subscribers", ActionList}:   {enums.RoleOwner, enums.RolePartner},
	{"subscribers", ActionCreate}: {enums.RoleOwner, enums.RolePartner},
	{"subscribers", ActionDelete}: {enums.RoleOwner, enums.RolePartner},

	{"subscription_requests", ActionList}:   {enums.RoleOwner, enums.RolePartner},
	{"subscription_requests", ActionUpdate}: {enums.RoleOwner, enums.RolePartner},

	{"suppliers", ActionList}:   {enums.RoleSubscriber, enums.RoleAdmin, enums.RolePartner, enums.RoleOwner},
	{"suppliers", ActionCreate}: {enums.RoleOwner, enums.RolePartner},
	{"suppliers", ActionUpdate}: {enums.RoleOwner, enums.RolePartner},
	{"suppliers", ActionDelete}: {enums.RoleOwner, enums.RolePartner},

	{"distributors", ActionList}:   {enums.RoleSubscriber, enums.RoleAdmin, enums.RolePartner, enums.RoleOwner},
	{"distributors", ActionCreate}: {enums.RoleOwner, enums.RolePartner},
	{"distributors", ActionUpdate}: {enums.RoleOwner, enums.RolePartner},
	{"distributors", ActionDelete}: {enums.RoleOwner, enums.RolePartner},

	{"catalog", ActionCreate}: {enums.RoleOwner, enums.RolePartner, enums.RoleAdmin},
	{"catalog", ActionUpdate}: {enums.RoleOwner, enums.RolePartner, enums.RoleAdmin},
	{"catalog", ActionDelete}: {enums.RoleOwner, enums.RolePartner, enums.RoleAdmin},

	{"products", ActionCreate}: {enums.RoleOwner, enums.RolePartner, enums.RoleAdmin},
	{"products", ActionUpdate}: {enums.RoleOwner, enums.RolePartner, enums.RoleAdmin},
	{"products", ActionDelete}: {enums.RoleOwner, enums.RolePartner, enums.RoleAdmin},

	{"marketing", ActionCreate}: {enums.RoleOwner, enums.RolePartner, enums.RoleAdmin},
	{"marketing", ActionUpdate}: {enums.RoleOwner, enums.RolePartner, enums.RoleAdmin},
	{"marketing", ActionDelete}: {enums.RoleOwner, enums.RolePartner, enums.RoleAdmin},

	{"orders_admin", ActionList}:   {enums.RoleOwner, enums.RolePartner, enums.RoleAdmin},
	{"orders_admin", ActionUpdate}: {enums.RoleOwner, enums.RolePartner, enums.RoleAdmin},

	{"customers", ActionList}: {enums.RoleOwner, enums.RolePartner, enums.RoleAdmin},

	{"collections", ActionList}: {enums.RoleOwner, enums.RolePartner},

	{"analytics", ActionRead}: {enums.RoleOwner, enums.RolePartner},
}

// Allowed reports whether the given role may perform action on resource.
// Unlisted pairs are public.
func Allowed(role enums.Role, resource string, action Action) bool {
	allowed, ok := policy[rule{Resource: resource, Action: action}]
	if !ok {
		return true
	}
	for _, candidate := range allowed {
		if role == candidate {
			return true
		}
	}
	return false
}

// Restricted reports whether the pair has an entry in the policy table,
// meaning anonymous callers must be rejected with unauthorized rather
// than forbidden.
func Restricted(resource string, action Action) bool {
	_, ok := policy[rule{Resource: resource, Action: action}]
	return ok
}
