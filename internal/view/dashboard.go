// Package view holds the per-page state machines the handlers drive.
//
// Each asynchronously loaded resource carries one explicit model.Status
// instead of independent loading/loaded flags.
package view

import (
	"strings"

	"github.com/urlio/urlio-web/internal/model"
)

// FormState is the lifecycle of the shorten form.
type FormState int

const (
	FormIdle FormState = iota
	FormSubmitting
)

// Dashboard is the state of the user dashboard for one render.
type Dashboard struct {
	Links       []model.ShortLink
	LinksStatus model.Status

	Warnings       []model.Warning
	WarningsStatus model.Status

	Form      FormState
	FormValue string

	StatsCode string
	Stats     *model.ClickStats
}

// NewDashboard returns a dashboard before mount.
func NewDashboard() *Dashboard {
	return &Dashboard{}
}

// BeginMount marks both lists as loading.
func (d *Dashboard) BeginMount() {
	d.LinksStatus = model.StatusLoading
	d.WarningsStatus = model.StatusLoading
}

// LinksLoaded settles the link list independently of the warnings.
func (d *Dashboard) LinksLoaded(links []model.ShortLink, err error) {
	if err != nil {
		d.LinksStatus = model.StatusFailed
		return
	}
	d.Links = links
	d.LinksStatus = model.StatusLoaded
}

// WarningsLoaded settles the warnings list independently of the links.
func (d *Dashboard) WarningsLoaded(warnings []model.Warning, err error) {
	if err != nil {
		d.WarningsStatus = model.StatusFailed
		return
	}
	d.Warnings = warnings
	d.WarningsStatus = model.StatusLoaded
}

// BeginSubmit moves the form to Submitting. It returns false, leaving the
// form idle, when the value is blank; the caller must then skip the call.
func (d *Dashboard) BeginSubmit(value string) bool {
	d.FormValue = value
	if strings.TrimSpace(value) == "" {
		return false
	}
	d.Form = FormSubmitting
	return true
}

// SubmitSucceeded prepends the new link. The list is neither re-sorted
// nor de-duplicated.
func (d *Dashboard) SubmitSucceeded(link model.ShortLink) {
	d.Links = append([]model.ShortLink{link}, d.Links...)
	d.Form = FormIdle
	d.FormValue = ""
}

// SubmitFailed returns the form to idle, keeping the typed value.
func (d *Dashboard) SubmitFailed() {
	d.Form = FormIdle
}

// Unread returns the warnings not yet acknowledged.
func (d *Dashboard) Unread() []model.Warning {
	var out []model.Warning
	for _, w := range d.Warnings {
		if !w.IsRead {
			out = append(out, w)
		}
	}
	return out
}

// BlockingWarning reports whether the warning modal must be shown.
func (d *Dashboard) BlockingWarning() bool {
	return len(d.Unread()) > 0
}

// Acknowledged removes exactly one warning with id. Call it only after the
// backend accepted the acknowledgement.
func (d *Dashboard) Acknowledged(id int64) bool {
	for i, w := range d.Warnings {
		if w.ID == id {
			d.Warnings = append(d.Warnings[:i:i], d.Warnings[i+1:]...)
			return true
		}
	}
	return false
}

// OpenStats shows the analytics modal for code.
func (d *Dashboard) OpenStats(code string, stats *model.ClickStats) {
	d.StatsCode = code
	d.Stats = stats
}

// StatsOpen reports whether the analytics modal is visible.
func (d *Dashboard) StatsOpen() bool {
	return d.StatsCode != "" && d.Stats != nil
}

// Submitting reports whether the form is mid-submit.
func (d *Dashboard) Submitting() bool {
	return d.Form == FormSubmitting
}
