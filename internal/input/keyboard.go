package input

import (
	"fmt"
	"log"

	"github.com/eiannone/keyboard"

	"github.com/keyfall/keyfall/internal/game"
)

// Keyboard maps a row of runes onto lanes 0..4, emitting NoteOn events as
// keys arrive. Terminal keyboards deliver no release edges, so this driver
// never produces NoteOff.
type Keyboard struct {
	events <-chan keyboard.KeyEvent
	keys   []rune
}

func NewKeyboard(keys string) (*Keyboard, error) {
	events, err := keyboard.GetKeys(128)
	if nil != err {
		return nil, fmt.Errorf("unable to open keyboard: %w", err)
	}
	return &Keyboard{events: events, keys: []rune(keys)}, nil
}

// Poll drains buffered key presses. The second return is true when the
// player asked to quit (escape).
func (k *Keyboard) Poll() ([]Event, bool) {
	events := []Event{}
	for i := 0; i < len(k.events); i++ {
		key := <-k.events
		if key.Key == keyboard.KeyEsc {
			return events, true
		}
		for lane, r := range k.keys {
			if key.Rune == r {
				events = append(events, Event{
					Kind:    NoteOn,
					Lane:    game.Lane(lane),
					HasLane: true,
					Source:  "keyboard",
				})
			}
		}
	}
	return events, false
}

func (k *Keyboard) Close() {
	if err := keyboard.Close(); nil != err {
		log.Println("unable to close keyboard:", err)
	}
}
