// Package rbac maps user roles to capability sets.
//
// The table is static: roles and their capabilities are fixed at compile
// time, queried through HasCapability. This gates which API operations a
// role may invoke; the same tokens drive which affordances the mobile client
// renders.
package rbac

// Role identifies a class of user.
type Role string

const (
	RoleOwner       Role = "owner"
	RoleSalesRep    Role = "sales_rep"
	RoleLorryDriver Role = "lorry_driver"
)

// Capability is a permission token gating one operation.
type Capability string

const (
	CapViewCustomers          Capability = "view_customers"
	CapAddCustomer            Capability = "add_customer"
	CapEditCustomer           Capability = "edit_customer"
	CapDeleteCustomer         Capability = "delete_customer"
	CapManageCustomerPayments Capability = "manage_customer_payments"
	CapViewOrders             Capability = "view_orders"
	CapCreateOrder            Capability = "create_order"
	CapViewProducts           Capability = "view_products"
	CapManageProducts         Capability = "manage_products"
	CapViewReports            Capability = "view_reports"
	CapManageUsers            Capability = "manage_users"
	CapUpdateDeliveryStatus   Capability = "update_delivery_status"
)

// roleCapabilities is the authoritative role → capability table.
// Owner holds every capability; sales reps manage customers, orders, and
// payments on their routes; lorry drivers get read access plus delivery
// updates.
var roleCapabilities = map[Role]map[Capability]bool{
	RoleOwner: capSet(
		CapViewCustomers, CapAddCustomer, CapEditCustomer, CapDeleteCustomer,
		CapManageCustomerPayments, CapViewOrders, CapCreateOrder,
		CapViewProducts, CapManageProducts, CapViewReports, CapManageUsers,
		CapUpdateDeliveryStatus,
	),
	RoleSalesRep: capSet(
		CapViewCustomers, CapAddCustomer, CapEditCustomer,
		CapManageCustomerPayments, CapViewOrders, CapCreateOrder,
		CapViewProducts,
	),
	RoleLorryDriver: capSet(
		CapViewCustomers, CapViewOrders, CapViewProducts,
		CapUpdateDeliveryStatus,
	),
}

func capSet(caps ...Capability) map[Capability]bool {
	set := make(map[Capability]bool, len(caps))
	for _, c := range caps {
		set[c] = true
	}
	return set
}

// HasCapability reports whether the role holds the capability.
// Unknown roles hold nothing; absence is false, never an error.
func HasCapability(role Role, cap Capability) bool {
	return roleCapabilities[role][cap]
}

// Capabilities returns the full token list for a role, for inclusion in
// login responses so the client can gate its UI without a second lookup.
// Unknown roles yield an empty list.
func Capabilities(role Role) []Capability {
	set := roleCapabilities[role]
	caps := make([]Capability, 0, len(set))
	for c := range set {
		caps = append(caps, c)
	}
	return caps
}

// ValidRole reports whether the role is one of the known roles.
func ValidRole(role Role) bool {
	_, ok := roleCapabilities[role]
	return ok
}
