package game

import "time"

// Registry tracks every card instance in a game and which pile it sits in.
// It is pure bookkeeping; no play rules live here.
type Registry struct {
	cards []*CardInstance
	seq   int64
}

// NewRegistry returns a registry over the given instances. The move sequence
// resumes from the highest sequence number seen, so played-pile ordering
// survives a save/load round trip.
func NewRegistry(cards []*CardInstance) *Registry {
	r := &Registry{cards: cards}
	for _, ci := range cards {
		if ci.Seq > r.seq {
			r.seq = ci.Seq
		}
	}

	return r
}

// Size returns the total number of card instances
func (r *Registry) Size() int {
	return len(r.cards)
}

// Instances returns every card instance in the registry
func (r *Registry) Instances() []*CardInstance {
	return r.cards
}

// CardsOf returns the instances owned by the player in the given pile
func (r *Registry) CardsOf(ownerID int64, pile Pile) []*CardInstance {
	matches := make([]*CardInstance, 0)
	for _, ci := range r.cards {
		if ci.OwnerID == ownerID && ci.Pile == pile {
			matches = append(matches, ci)
		}
	}

	return matches
}

// CardsIn returns all instances in the given pile regardless of owner
func (r *Registry) CardsIn(pile Pile) []*CardInstance {
	matches := make([]*CardInstance, 0)
	for _, ci := range r.cards {
		if ci.Pile == pile {
			matches = append(matches, ci)
		}
	}

	return matches
}

// CountIn returns how many instances the player has in the given pile
func (r *Registry) CountIn(ownerID int64, pile Pile) int {
	count := 0
	for _, ci := range r.cards {
		if ci.OwnerID == ownerID && ci.Pile == pile {
			count++
		}
	}

	return count
}

// TopOfPlayedPile returns the most recently played instance, or nil if the
// played pile is empty
func (r *Registry) TopOfPlayedPile() *CardInstance {
	var top *CardInstance
	for _, ci := range r.cards {
		if ci.Pile != PilePlayed {
			continue
		}

		if top == nil || ci.Seq > top.Seq {
			top = ci
		}
	}

	return top
}

// Find returns the instance with the given code among the player's owned
// piles, or nil if the player does not hold that card
func (r *Registry) Find(ownerID int64, code string) *CardInstance {
	for _, ci := range r.cards {
		if ci.OwnerID == ownerID && ci.Pile.IsOwned() && ci.Card.Code == code {
			return ci
		}
	}

	return nil
}

// MoveCard transitions the instance to a new pile. The owner is cleared for
// shared piles no matter what was passed in.
func (r *Registry) MoveCard(ci *CardInstance, pile Pile, ownerID int64) {
	if !pile.IsOwned() {
		ownerID = 0
	}

	r.seq++
	ci.Pile = pile
	ci.OwnerID = ownerID
	ci.Seq = r.seq
	ci.LastModified = time.Now()
}
