package member

// Golf access is derived from role and tier at check time, never stored, so
// a tier change takes effect on the next request.
//
// Admins and staff are always eligible (they manage bookings). Regular
// members need a premium, vip, or honorary tier.
func IsGolfEligible(role Role, tier *TierLevel) bool {
	if role == RoleAdmin || role == RoleStaff {
		return true
	}
	if tier == nil {
		return false
	}
	switch *tier {
	case TierPremium, TierVIP, TierHonorary:
		return true
	default:
		return false
	}
}

// GolfEligible reports eligibility for the resolved member context.
func (m *MemberWithTier) GolfEligible() bool {
	return IsGolfEligible(m.Role, m.TierLevel)
}
