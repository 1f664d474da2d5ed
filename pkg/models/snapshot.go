package models

import "time"

// Snapshot is the full item collection as persisted locally and pushed to the
// remote store. It is always exchanged as one unit, never as a diff.
type Snapshot struct {
	Items     []Item    `json:"items"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Snapshot) CloneItems() []Item {
	items := make([]Item, len(s.Items))
	for i := range s.Items {
		items[i] = s.Items[i].Clone()
	}
	return items
}
