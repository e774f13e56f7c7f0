package property

// CanEdit reports whether actorID owns p. Only owners may edit or update a property.
func CanEdit(actorID int64, p *Property) bool {
	if p == nil || actorID <= 0 {
		return false
	}
	return p.UserID == actorID
}
