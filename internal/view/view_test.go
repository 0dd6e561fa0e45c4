package view

import (
	"errors"
	"testing"

	"github.com/urlio/urlio-web/internal/model"
)

func TestDashboard_MountSettlesIndependently(t *testing.T) {
	d := NewDashboard()
	d.BeginMount()
	if d.LinksStatus != model.StatusLoading || d.WarningsStatus != model.StatusLoading {
		t.Fatalf("expected both loading, got %s/%s", d.LinksStatus, d.WarningsStatus)
	}

	d.LinksLoaded(nil, errors.New("boom"))
	d.WarningsLoaded([]model.Warning{{ID: 1}}, nil)

	if d.LinksStatus != model.StatusFailed {
		t.Errorf("expected links failed, got %s", d.LinksStatus)
	}
	if d.WarningsStatus != model.StatusLoaded || len(d.Warnings) != 1 {
		t.Errorf("expected warnings loaded, got %s", d.WarningsStatus)
	}
}

func TestDashboard_BlankSubmitStaysIdle(t *testing.T) {
	d := NewDashboard()
	for _, v := range []string{"", "   ", "\t"} {
		if d.BeginSubmit(v) {
			t.Errorf("BeginSubmit(%q) should refuse", v)
		}
		if d.Submitting() {
			t.Errorf("form must stay idle for %q", v)
		}
	}
}

func TestDashboard_SubmitPrependsWithoutDedupe(t *testing.T) {
	d := NewDashboard()
	d.LinksLoaded([]model.ShortLink{{ShortCode: "old1"}, {ShortCode: "abc123"}}, nil)

	if !d.BeginSubmit("https://example.com") || !d.Submitting() {
		t.Fatal("expected form to be submitting")
	}
	d.SubmitSucceeded(model.ShortLink{ShortCode: "abc123", ShortURL: "http://host/abc123"})

	if d.Submitting() || d.FormValue != "" {
		t.Error("expected idle, cleared form after success")
	}
	if len(d.Links) != 3 || d.Links[0].ShortCode != "abc123" || d.Links[1].ShortCode != "old1" {
		t.Errorf("unexpected links: %+v", d.Links)
	}
}

func TestDashboard_SubmitFailedKeepsValue(t *testing.T) {
	d := NewDashboard()
	d.BeginSubmit("ftp://x")
	d.SubmitFailed()

	if d.Submitting() || d.FormValue != "ftp://x" {
		t.Errorf("unexpected state: %+v", d)
	}
}

func TestDashboard_Acknowledged(t *testing.T) {
	d := NewDashboard()
	d.WarningsLoaded([]model.Warning{{ID: 1}, {ID: 2}, {ID: 3, IsRead: true}}, nil)

	if !d.BlockingWarning() || len(d.Unread()) != 2 {
		t.Fatalf("expected two unread warnings")
	}
	if !d.Acknowledged(1) {
		t.Fatal("expected warning 1 to be removed")
	}
	if d.Acknowledged(1) {
		t.Error("removing twice must report false")
	}
	if len(d.Warnings) != 2 || d.Warnings[0].ID != 2 {
		t.Errorf("unexpected warnings: %+v", d.Warnings)
	}
	d.Acknowledged(2)
	if d.BlockingWarning() {
		t.Error("expected no blocking warning once all unread are acknowledged")
	}
}

func TestDashboard_Stats(t *testing.T) {
	d := NewDashboard()
	if d.StatsOpen() {
		t.Fatal("stats modal must start closed")
	}
	d.OpenStats("abc", &model.ClickStats{})
	if !d.StatsOpen() {
		t.Error("expected stats modal open")
	}
}

func TestAdmin_Lifecycle(t *testing.T) {
	a := NewAdmin()
	a.BeginLoad()
	if a.Status != model.StatusLoading {
		t.Fatalf("expected loading, got %s", a.Status)
	}

	a.Loaded(&model.AdminDashboard{Users: []model.UserSummary{{ID: 4, IsActive: true}}})
	if a.Status != model.StatusLoaded || a.Data.User(4) == nil {
		t.Fatalf("expected loaded snapshot")
	}

	a.SelectUser(4, "veli")
	if !a.ModalOpen() || a.UserLinksStatus != model.StatusLoading {
		t.Error("expected modal loading")
	}
	a.UserLinksLoaded(nil, errors.New("down"))
	if a.UserLinksStatus != model.StatusFailed || len(a.UserLinks) != 0 {
		t.Error("expected failed, empty modal list")
	}
	a.ClearSelection()
	if a.ModalOpen() {
		t.Error("expected modal closed")
	}

	a.Deny("admin required", "/dashboard")
	if a.Data != nil || a.RedirectTo != "/dashboard" {
		t.Errorf("unexpected denied state: %+v", a)
	}
}
