package engine

// advance moves every non-player entity along the travel axis, remembering
// where each one started so collisions can cover the whole step.
func advance(store *Store, deltaMs, multiplier float64) {
	store.Each(func(e *Entity) {
		if e.Kind == KindPlayer {
			return
		}
		e.prevY = e.Y
		e.Y += e.Speed * deltaMs * multiplier
	})
}

// prune removes the entities that passed the trailing edge of the viewport.
func prune(store *Store, height float64) {
	store.Each(func(e *Entity) {
		if e.Kind != KindPlayer && e.Y >= height {
			store.Remove(e.ID)
		}
	})
}

// detectCollisions returns every entity sharing the player's lane whose path
// during the last advance overlaps the player's box, in creation order.
// Sweeping the path keeps fast entities from jumping over the player on a
// long frame.
func detectCollisions(player *Entity, store *Store) []*Entity {
	if player == nil {
		return nil
	}
	box := player.Box()
	var hits []*Entity
	store.Each(func(e *Entity) {
		if e.Kind == KindPlayer || e.Lane != player.Lane {
			return
		}
		if box.Intersects(e.sweptBox()) {
			hits = append(hits, e)
		}
	})
	return hits
}
