package signal

import "github.com/smaquant/smaquant/internal/core"

// Crossover marks a buy or sell event at the index where the signal
// flips. The presentation layer renders these as chart markers.
type Crossover struct {
	Index  int         `json:"index"`
	Action core.Action `json:"action"`
}

// Crossovers detects signal transitions by edge detection on consecutive
// values: Flat->Long is a buy, Long->Flat a sell. The first bar can never
// be an event since it has no predecessor.
func Crossovers(signals []core.Position) []Crossover {
	var events []Crossover
	for i := 1; i < len(signals); i++ {
		switch {
		case signals[i-1] == core.Flat && signals[i] == core.Long:
			events = append(events, Crossover{Index: i, Action: core.ActionBuy})
		case signals[i-1] == core.Long && signals[i] == core.Flat:
			events = append(events, Crossover{Index: i, Action: core.ActionSell})
		}
	}
	return events
}
