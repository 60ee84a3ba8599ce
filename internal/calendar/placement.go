package calendar

import (
	"time"

	"github.com/janeyeyey/mcal/internal/contract"
)

// Placement classifies how an event renders on one covered day: a full card
// with title, location, and links, or an abbreviated continuation marker.
type Placement string

const (
	PlacementCard         Placement = "card"
	PlacementContinuation Placement = "continuation"
)

// Classify decides the placement for an event on a covered date. The start day
// always gets the full card. Whether the end day gets a second card or a
// continuation marker varies between deployments, so it is a flag:
// continuationIncludesEnd true (the default) marks every non-start day as a
// continuation for visual consistency; false promotes the end day back to a
// full card.
func Classify(ev contract.Event, date time.Time, continuationIncludesEnd bool) Placement {
	if IsStartDay(ev, date) {
		return PlacementCard
	}
	if !continuationIncludesEnd && IsEndDay(ev, date) {
		return PlacementCard
	}
	return PlacementContinuation
}
