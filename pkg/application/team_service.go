package application

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/pulse/pkg/domain"
	"github.com/felixgeelhaar/pulse/pkg/domain/project"
)

// TeamService maintains the roster and time-off records the capacity
// forecaster reads.
type TeamService struct {
	repo domain.SnapshotRepository
}

func NewTeamService(repo domain.SnapshotRepository) *TeamService {
	return &TeamService{repo: repo}
}

// ListMembers returns the current roster.
func (s *TeamService) ListMembers() (*project.Roster, error) {
	return s.repo.LoadRoster()
}

// AddMember adds or updates a roster entry.
func (s *TeamService) AddMember(m project.Member) error {
	roster, err := s.repo.LoadRoster()
	if err != nil {
		return fmt.Errorf("load roster: %w", err)
	}

	if err := roster.AddMember(m); err != nil {
		return err
	}

	if err := s.repo.SaveRoster(roster); err != nil {
		return fmt.Errorf("save roster: %w", err)
	}
	return nil
}

// RemoveMember removes a roster entry by user ID.
func (s *TeamService) RemoveMember(userID string) error {
	roster, err := s.repo.LoadRoster()
	if err != nil {
		return fmt.Errorf("load roster: %w", err)
	}

	if err := roster.RemoveMember(userID); err != nil {
		return err
	}

	if err := s.repo.SaveRoster(roster); err != nil {
		return fmt.Errorf("save roster: %w", err)
	}
	return nil
}

// ListTimeOff returns all recorded absences.
func (s *TeamService) ListTimeOff() ([]project.TimeOff, error) {
	return s.repo.LoadTimeOff()
}

// AddTimeOff records an absence interval for a roster member.
func (s *TeamService) AddTimeOff(entry project.TimeOff) error {
	if entry.MemberID == "" {
		return fmt.Errorf("time off member_id cannot be empty")
	}
	if entry.EndDate.Before(entry.StartDate) {
		return fmt.Errorf("time off end date %s is before start date %s",
			entry.EndDate.Format("2006-01-02"), entry.StartDate.Format("2006-01-02"))
	}

	roster, err := s.repo.LoadRoster()
	if err != nil {
		return fmt.Errorf("load roster: %w", err)
	}
	if roster.FindMember(entry.MemberID) == nil {
		return fmt.Errorf("member not found: %s", entry.MemberID)
	}

	timeOff, err := s.repo.LoadTimeOff()
	if err != nil {
		return fmt.Errorf("load time off: %w", err)
	}

	timeOff = append(timeOff, entry)
	if err := s.repo.SaveTimeOff(timeOff); err != nil {
		return fmt.Errorf("save time off: %w", err)
	}
	return nil
}

// RemoveTimeOff deletes absences for a member that start on the given
// date. Returns the number of entries removed.
func (s *TeamService) RemoveTimeOff(memberID string, startDate time.Time) (int, error) {
	timeOff, err := s.repo.LoadTimeOff()
	if err != nil {
		return 0, fmt.Errorf("load time off: %w", err)
	}

	kept := timeOff[:0]
	removed := 0
	for _, entry := range timeOff {
		sameDay := entry.StartDate.Year() == startDate.Year() &&
			entry.StartDate.YearDay() == startDate.YearDay()
		if entry.MemberID == memberID && sameDay {
			removed++
			continue
		}
		kept = append(kept, entry)
	}

	if removed == 0 {
		return 0, nil
	}

	if err := s.repo.SaveTimeOff(kept); err != nil {
		return 0, fmt.Errorf("save time off: %w", err)
	}
	return removed, nil
}
