package configs

import "strings"

// EventInfo is the static content shown for one occasion.
type EventInfo struct {
	Name   string
	Date   string
	Time   string // "<start> - <end>"
	Venue  string
	MapURL string
}

const (
	EventKeyNikkah  = "nikkah"
	EventKeyWedding = "wedding"
	EventKeyHenna   = "henna"
)

// Events is the per-occasion content. The wedding entry is displayed as "Reception".
var Events = map[string]EventInfo{
	EventKeyNikkah: {
		Name:   "Nikkah",
		Date:   "Friday, July 17, 2026",
		Time:   "3pm - 4pm",
		Venue:  "Marina Del Rey",
		MapURL: "https://maps.app.goo.gl/iTfg5qRv8xPTs2v1A",
	},
	EventKeyWedding: {
		Name:   "Reception",
		Date:   "Friday, July 17, 2026",
		Time:   "5pm - 9pm",
		Venue:  "Marina Del Rey",
		MapURL: "https://maps.app.goo.gl/iTfg5qRv8xPTs2v1A",
	},
	EventKeyHenna: {
		Name:   "Henna",
		Date:   "Friday, [Date]",
		Time:   "[Start Time] - [End Time]",
		Venue:  "[Venue Name]",
		MapURL: "https://maps.google.com/?q=[Venue+Name]",
	},
}

// StartTime returns the part of Time before " - ".
func (e EventInfo) StartTime() string {
	start, _, _ := strings.Cut(e.Time, " - ")
	return start
}

// EndTime returns the part of Time after " - ", or the whole Time when there is no range.
func (e EventInfo) EndTime() string {
	_, end, found := strings.Cut(e.Time, " - ")
	if !found || end == "" {
		return e.StartTime()
	}
	return end
}

// CombinedTime spans from the nikkah start to the reception end.
func CombinedTime() string {
	return Events[EventKeyNikkah].StartTime() + " - " + Events[EventKeyWedding].EndTime()
}
