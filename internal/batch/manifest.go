package batch

import (
	"encoding/json"
	"os"

	"stack-carousel/internal/carousel"
)

// ManifestCard is one card's placement within a frame.
type ManifestCard struct {
	Slot      int                `json:"slot"`
	Key       string             `json:"key"`
	Effective float64            `json:"effective_offset"`
	Transform carousel.Transform `json:"transform"`
}

// ManifestEntry represents one frame in the output manifest.
type ManifestEntry struct {
	Index       int            `json:"index"`
	Image       string         `json:"image"`
	State       string         `json:"state"`
	Offset      float64        `json:"offset"`
	RestingSlot int            `json:"resting_slot"`
	Direction   string         `json:"direction"`
	Cards       []ManifestCard `json:"cards"`
}

// WriteManifest writes manifest.json to the output directory.
func WriteManifest(path string, frames []Frame) error {
	entries := make([]ManifestEntry, len(frames))
	for i, f := range frames {
		cards := make([]ManifestCard, len(f.Cards))
		for j, c := range f.Cards {
			cards[j] = ManifestCard{
				Slot:      c.Slot,
				Key:       c.Payload,
				Effective: c.Effective,
				Transform: c.Transform,
			}
		}
		entries[i] = ManifestEntry{
			Index:       f.Index,
			Image:       FramePath(f.Index),
			State:       f.Event.State.String(),
			Offset:      f.Event.Offset,
			RestingSlot: f.Event.RestingSlot,
			Direction:   f.Event.Direction.String(),
			Cards:       cards,
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
