package game

// Direction tags a pile as ascending or descending.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "descending"
	}
	return "ascending"
}

// PileID is the client-facing pile number, 1 through 4.
type PileID int

const (
	PileAsc1 PileID = iota + 1
	PileAsc2
	PileDesc1
	PileDesc2
)

// AllPiles lists the piles in wire order.
var AllPiles = [...]PileID{PileAsc1, PileAsc2, PileDesc1, PileDesc2}

const (
	// AscendingStart is the top value of a fresh ascending pile.
	AscendingStart = 1
	// DescendingStart is the top value of a fresh descending pile.
	DescendingStart = 100
	// backwardsStep is the exact distance a card may move a pile against its direction.
	backwardsStep = 10
)

type pileSpec struct {
	key       string
	direction Direction
}

var pileSpecs = map[PileID]pileSpec{
	PileAsc1:  {key: "asc1", direction: Ascending},
	PileAsc2:  {key: "asc2", direction: Ascending},
	PileDesc1: {key: "desc1", direction: Descending},
	PileDesc2: {key: "desc2", direction: Descending},
}

// Valid reports whether id names one of the four piles.
func (id PileID) Valid() bool {
	_, ok := pileSpecs[id]
	return ok
}

// Direction returns the pile's ordering. Invalid ids report Ascending; callers check Valid first.
func (id PileID) Direction() Direction {
	return pileSpecs[id].direction
}

// Key is the name the pile carries in state views ("asc1", "desc2", ...).
func (id PileID) Key() string {
	return pileSpecs[id].key
}

// IsLegal is the move validator: whether card may go on a pile of the given direction
// whose current top is top.
func IsLegal(dir Direction, top, card int) bool {
	switch dir {
	case Ascending:
		return card > top || card == top-backwardsStep
	case Descending:
		return card < top || card == top+backwardsStep
	}
	return false
}

// Piles holds the current top value of each pile, indexed by PileID-1.
type Piles [len(AllPiles)]int

// NewPiles returns the four piles at their starting values.
func NewPiles() Piles {
	var p Piles
	for _, id := range AllPiles {
		if id.Direction() == Ascending {
			p[id-1] = AscendingStart
		} else {
			p[id-1] = DescendingStart
		}
	}
	return p
}

// Top returns the current value of pile id. Assumes id is valid.
func (p *Piles) Top(id PileID) int {
	return p[id-1]
}

// Set replaces the top of pile id. Assumes id is valid.
func (p *Piles) Set(id PileID, card int) {
	p[id-1] = card
}

// Accepts reports whether card is legal on pile id.
func (p *Piles) Accepts(id PileID, card int) bool {
	if !id.Valid() {
		return false
	}
	return IsLegal(id.Direction(), p.Top(id), card)
}

// AcceptsAny reports whether card is legal on at least one pile.
func (p *Piles) AcceptsAny(card int) bool {
	for _, id := range AllPiles {
		if p.Accepts(id, card) {
			return true
		}
	}
	return false
}

// ByKey renders the piles keyed by their wire names.
func (p *Piles) ByKey() map[string]int {
	out := make(map[string]int, len(AllPiles))
	for _, id := range AllPiles {
		out[id.Key()] = p.Top(id)
	}
	return out
}
