package view

import (
	"github.com/urlio/urlio-web/internal/model"
)

// Admin is the state of the admin dashboard for one render.
type Admin struct {
	Status model.Status
	Data   *model.AdminDashboard

	// Modal scope: set only while a user's links are shown.
	SelectedUserID   int64
	SelectedUsername string
	UserLinks        []model.ShortLink
	UserLinksStatus  model.Status

	Banner string
	Alert  string

	// AccessMessage and RedirectTo drive the timed redirect away from the page.
	AccessMessage string
	RedirectTo    string
}

// NewAdmin returns an admin page before mount.
func NewAdmin() *Admin {
	return &Admin{}
}

// Deny renders the page as an access notice followed by a timed redirect.
func (a *Admin) Deny(message, redirectTo string) {
	a.Status = model.StatusFailed
	a.Data = nil
	a.AccessMessage = message
	a.RedirectTo = redirectTo
}

// BeginLoad marks the snapshot as loading.
func (a *Admin) BeginLoad() {
	a.Status = model.StatusLoading
}

// Loaded replaces the snapshot wholesale.
func (a *Admin) Loaded(data *model.AdminDashboard) {
	a.Status = model.StatusLoaded
	a.Data = data
}

// LoadFailed records a failed snapshot fetch. The previous snapshot is
// dropped; the page shows an access-denied notice instead.
func (a *Admin) LoadFailed() {
	a.Status = model.StatusFailed
	a.Data = nil
}

// SelectUser opens the links modal for one user.
func (a *Admin) SelectUser(userID int64, username string) {
	a.SelectedUserID = userID
	a.SelectedUsername = username
	a.UserLinks = nil
	a.UserLinksStatus = model.StatusLoading
}

// UserLinksLoaded settles the modal's link list. Failures show an empty list.
func (a *Admin) UserLinksLoaded(links []model.ShortLink, err error) {
	if err != nil {
		a.UserLinks = nil
		a.UserLinksStatus = model.StatusFailed
		return
	}
	a.UserLinks = links
	a.UserLinksStatus = model.StatusLoaded
}

// ClearSelection closes the modal.
func (a *Admin) ClearSelection() {
	a.SelectedUserID = 0
	a.SelectedUsername = ""
	a.UserLinks = nil
	a.UserLinksStatus = model.StatusIdle
}

// ModalOpen reports whether a user's links are shown.
func (a *Admin) ModalOpen() bool {
	return a.SelectedUserID != 0
}
