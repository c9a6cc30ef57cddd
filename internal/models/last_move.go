package models

// LastMove records the most recent successful play so clients can highlight it.
type LastMove struct {
	PlayerName   string `json:"player_name"`
	Card         int    `json:"card"`
	PileNum      int    `json:"pile_num"`
	OldPileValue int    `json:"old_pile_value"`
}
