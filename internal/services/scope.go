package services

// CoachScope identifies the coach a request acts as. Admin coaches see every
// roster; everyone else only their own.
type CoachScope struct {
	CoachID uint
	Admin   bool
}

// CanAccess reports whether the scope may touch a record owned by ownerCoachID.
func (scope CoachScope) CanAccess(ownerCoachID uint) bool {
	return scope.Admin || scope.CoachID == ownerCoachID
}
