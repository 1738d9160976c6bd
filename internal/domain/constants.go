package domain

const (
	RoleUser  = "USER"
	RoleOwner = "OWNER"
)

// Payment lifecycle. Terminal states are immutable; only the verified webhook
// path moves a payment out of PENDING.
const (
	PaymentStatusPending = "pending"
	PaymentStatusSuccess = "success"
	PaymentStatusFailed  = "failed"
)

const (
	BookingStatusPending   = "PENDING"
	BookingStatusAccepted  = "ACCEPTED"
	BookingStatusRejected  = "REJECTED"
	BookingStatusCancelled = "CANCELLED"
)

const (
	BookingUnpaid = "UNPAID"
	BookingPaid   = "PAID"
)

const (
	JoinRequestPending  = "pending"
	JoinRequestApproved = "approved"
	JoinRequestRejected = "rejected"
)

// Space categories offered by the mobile client.
var SpaceCategories = []string{"Wedding", "Corporate", "Birthday", "Conference", "Social"}

func ValidSpaceCategory(category string) bool {
	for _, c := range SpaceCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Role privilege bits (bitwise combination stored per organisation role).
const (
	PrivManageSpaces   = 1 << 0
	PrivManageBookings = 1 << 1
	PrivManageMembers  = 1 << 2
	PrivViewAnalytics  = 1 << 3

	privAll = PrivManageSpaces | PrivManageBookings | PrivManageMembers | PrivViewAnalytics
)

// ValidPrivilegeMask reports whether mask only combines known privilege bits.
func ValidPrivilegeMask(mask int) bool {
	return mask >= 0 && mask&^privAll == 0
}
