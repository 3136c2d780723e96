package application

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/pulse/pkg/domain/project"
)

func TestAddMember(t *testing.T) {
	repo := newMockRepo()
	svc := NewTeamService(repo)

	if err := svc.AddMember(project.Member{UserID: "u1", Name: "Ada", Role: "engineer"}); err != nil {
		t.Fatalf("AddMember: %v", err)
	}

	roster, err := svc.ListMembers()
	if err != nil {
		t.Fatal(err)
	}
	if len(roster.Members) != 1 || roster.Members[0].Name != "Ada" {
		t.Errorf("roster = %+v", roster)
	}
}

func TestAddMember_UpdatesExisting(t *testing.T) {
	repo := newMockRepo()
	svc := NewTeamService(repo)

	if err := svc.AddMember(project.Member{UserID: "u1", Name: "Ada", Role: "engineer"}); err != nil {
		t.Fatal(err)
	}
	if err := svc.AddMember(project.Member{UserID: "u1", Name: "Ada", Role: "designer"}); err != nil {
		t.Fatal(err)
	}

	roster, _ := svc.ListMembers()
	if len(roster.Members) != 1 {
		t.Fatalf("expected 1 member after update, got %d", len(roster.Members))
	}
	if roster.Members[0].Role != "designer" {
		t.Errorf("role = %s, want designer", roster.Members[0].Role)
	}
}

func TestAddMember_RequiresID(t *testing.T) {
	svc := NewTeamService(newMockRepo())

	if err := svc.AddMember(project.Member{Name: "Anon"}); err == nil {
		t.Fatal("expected error for missing user_id")
	}
}

func TestRemoveMember(t *testing.T) {
	repo := newMockRepo()
	svc := NewTeamService(repo)

	if err := svc.AddMember(project.Member{UserID: "u1", Name: "Ada"}); err != nil {
		t.Fatal(err)
	}
	if err := svc.RemoveMember("u1"); err != nil {
		t.Fatalf("RemoveMember: %v", err)
	}

	roster, _ := svc.ListMembers()
	if len(roster.Members) != 0 {
		t.Errorf("expected empty roster, got %+v", roster.Members)
	}

	if err := svc.RemoveMember("u1"); err == nil {
		t.Error("expected error removing unknown member")
	}
}

func TestAddTimeOff(t *testing.T) {
	repo := newMockRepo()
	svc := NewTeamService(repo)

	if err := svc.AddMember(project.Member{UserID: "u1", Name: "Ada"}); err != nil {
		t.Fatal(err)
	}

	entry := project.TimeOff{
		MemberID:    "u1",
		StartDate:   time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC),
		HoursPerDay: 8,
	}
	if err := svc.AddTimeOff(entry); err != nil {
		t.Fatalf("AddTimeOff: %v", err)
	}

	timeOff, err := svc.ListTimeOff()
	if err != nil {
		t.Fatal(err)
	}
	if len(timeOff) != 1 || timeOff[0].MemberID != "u1" {
		t.Errorf("time off = %+v", timeOff)
	}
}

func TestAddTimeOff_UnknownMember(t *testing.T) {
	svc := NewTeamService(newMockRepo())

	entry := project.TimeOff{
		MemberID:  "ghost",
		StartDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC),
	}
	if err := svc.AddTimeOff(entry); err == nil {
		t.Fatal("expected error for unknown member")
	}
}

func TestAddTimeOff_EndBeforeStart(t *testing.T) {
	repo := newMockRepo()
	svc := NewTeamService(repo)
	if err := svc.AddMember(project.Member{UserID: "u1", Name: "Ada"}); err != nil {
		t.Fatal(err)
	}

	entry := project.TimeOff{
		MemberID:  "u1",
		StartDate: time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := svc.AddTimeOff(entry); err == nil {
		t.Fatal("expected error for inverted interval")
	}
}

func TestRemoveTimeOff(t *testing.T) {
	repo := newMockRepo()
	svc := NewTeamService(repo)
	if err := svc.AddMember(project.Member{UserID: "u1", Name: "Ada"}); err != nil {
		t.Fatal(err)
	}

	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	if err := svc.AddTimeOff(project.TimeOff{
		MemberID: "u1", StartDate: start, EndDate: start.AddDate(0, 0, 4), HoursPerDay: 8,
	}); err != nil {
		t.Fatal(err)
	}

	removed, err := svc.RemoveTimeOff("u1", start)
	if err != nil {
		t.Fatalf("RemoveTimeOff: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}

	timeOff, _ := svc.ListTimeOff()
	if len(timeOff) != 0 {
		t.Errorf("expected no time off, got %+v", timeOff)
	}

	removed, err = svc.RemoveTimeOff("u1", start)
	if err != nil {
		t.Fatal(err)
	}
	if removed != 0 {
		t.Errorf("removed = %d, want 0 on second delete", removed)
	}
}
