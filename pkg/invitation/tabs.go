// Package invitation holds the guest-facing decisions of the invitation site:
// which tabs and RSVP sections a group sees, token verification state and the
// per-event RSVP form.
package invitation

import (
	"invite.link/configs"
	"invite.link/models"
)

// Page identifies one of the tabbed pages under /:token.
type Page string

const (
	PageNikkah Page = "nikkah"
	PageHenna  Page = "henna"
	PageRSVP   Page = "rsvp"
)

// Tab is one entry of the navigation bar.
type Tab struct {
	Page  Page
	Label string
}

// Href is the tab's link for a token.
func (t Tab) Href(token string) string {
	return "/" + token + "/" + string(t.Page)
}

// Tabs returns the visible tabs in display order. RSVP is always last.
func Tabs(g models.Group) []Tab {
	tabs := make([]Tab, 0, 3)
	if ShowsNikkahPage(g) {
		label := "Reception"
		if g.InvitedToNikkah {
			label = "Nikkah"
		}
		tabs = append(tabs, Tab{Page: PageNikkah, Label: label})
	}
	if g.InvitedToHenna {
		tabs = append(tabs, Tab{Page: PageHenna, Label: "Henna"})
	}
	return append(tabs, Tab{Page: PageRSVP, Label: "RSVP"})
}

// ShowsNikkahPage reports whether the Nikkah/Reception page is available.
func ShowsNikkahPage(g models.Group) bool {
	return g.InvitedToNikkah || g.InvitedToWedding
}

// NikkahTitle is the heading of the Nikkah/Reception page.
func NikkahTitle(g models.Group) string {
	switch {
	case g.InvitedToNikkah && g.InvitedToWedding:
		return "Nikkah & Reception"
	case g.InvitedToNikkah:
		return "Nikkah Ceremony"
	case g.InvitedToWedding:
		return "Reception"
	}
	return ""
}

// ScheduleItem is one line of an event schedule.
type ScheduleItem struct {
	Time  string
	Label string
}

// NikkahDetails is what the Nikkah/Reception page shows for a group.
type NikkahDetails struct {
	Title    string
	Date     string
	Venue    string
	MapURL   string
	Schedule []ScheduleItem
}

// NikkahPage picks the details for the Nikkah/Reception page. Venue and date
// come from the nikkah when the group attends it, else from the reception.
func NikkahPage(g models.Group) NikkahDetails {
	nikkah := configs.Events[configs.EventKeyNikkah]
	wedding := configs.Events[configs.EventKeyWedding]

	source := wedding
	if g.InvitedToNikkah {
		source = nikkah
	}
	d := NikkahDetails{
		Title:  NikkahTitle(g),
		Date:   source.Date,
		Venue:  source.Venue,
		MapURL: source.MapURL,
	}
	if g.InvitedToNikkah {
		d.Schedule = append(d.Schedule,
			ScheduleItem{Time: nikkah.Time, Label: "Nikkah Ceremony"},
			ScheduleItem{Time: "4pm - 5pm", Label: "Cocktail Hour"},
		)
	}
	if g.InvitedToWedding {
		d.Schedule = append(d.Schedule, ScheduleItem{Time: wedding.Time, Label: "Reception & Dinner"})
	}
	return d
}

// Section is one RSVP form block. Nikkah and Reception share the wedding RSVP.
type Section struct {
	Event    models.Event
	Title    string
	Page     Page // details page linked from the title
	Audience string
	Date     string
	Time     string
}

// Sections returns the RSVP sections a group may answer, in display order.
func Sections(g models.Group) []Section {
	var sections []Section
	if g.InvitedToWedding {
		wedding := configs.Events[configs.EventKeyWedding]
		s := Section{
			Event:    models.EventWedding,
			Title:    "Reception",
			Page:     PageNikkah,
			Audience: "Mixed Event",
			Date:     wedding.Date,
			Time:     wedding.Time,
		}
		if g.InvitedToNikkah {
			s.Title = "Nikkah & Reception"
			s.Date = configs.Events[configs.EventKeyNikkah].Date
			s.Time = configs.CombinedTime()
		}
		sections = append(sections, s)
	}
	if g.InvitedToHenna {
		henna := configs.Events[configs.EventKeyHenna]
		sections = append(sections, Section{
			Event:    models.EventHenna,
			Title:    "Henna",
			Page:     PageHenna,
			Audience: "Women Only",
			Date:     henna.Date,
			Time:     henna.Time,
		})
	}
	return sections
}
