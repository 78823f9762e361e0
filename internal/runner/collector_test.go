package runner

import (
	"errors"
	"testing"

	"github.com/harrison/caserun/internal/models"
)

func TestCollectorAggregates(t *testing.T) {
	c := NewCollector("run-9")

	c.Observe(models.Outcome{Case: models.Case{ID: "a"}, Status: models.StatusOK})
	c.Observe(models.Outcome{Case: models.Case{ID: "b"}, Status: models.StatusFail, ExitCode: 2})
	c.Observe(models.Outcome{Case: models.Case{ID: "c"}, Status: models.StatusError, Err: errors.New("boom")})
	c.AddSkipped(2)

	s := c.Summary()

	if s.RunID != "run-9" {
		t.Errorf("run id = %s, want run-9", s.RunID)
	}
	if s.Total != 3 {
		t.Errorf("total = %d, want 3", s.Total)
	}
	if s.Passed != 1 {
		t.Errorf("passed = %d, want 1", s.Passed)
	}
	if s.Skipped != 2 {
		t.Errorf("skipped = %d, want 2", s.Skipped)
	}
	if s.Total != s.Passed+len(s.NonSuccess) {
		t.Errorf("invariant violated: total=%d passed=%d nonSuccess=%d",
			s.Total, s.Passed, len(s.NonSuccess))
	}
}

func TestCollectorPreservesCompletionOrder(t *testing.T) {
	c := NewCollector("run-1")

	// arrival order is completion order, deliberately not sorted
	c.Observe(models.Outcome{Case: models.Case{ID: "late"}, Status: models.StatusFail, ExitCode: 1})
	c.Observe(models.Outcome{Case: models.Case{ID: "early"}, Status: models.StatusFail, ExitCode: 1})

	s := c.Summary()
	if s.NonSuccess[0].Case.ID != "late" || s.NonSuccess[1].Case.ID != "early" {
		t.Errorf("non-success order not preserved: %v", s.NonSuccess)
	}

	all := c.Outcomes()
	if len(all) != 2 || all[0].Case.ID != "late" {
		t.Errorf("outcome order not preserved: %v", all)
	}
}

func TestCollectorEmptyRun(t *testing.T) {
	s := NewCollector("run-0").Summary()
	if s.Total != 0 || s.Passed != 0 || len(s.NonSuccess) != 0 {
		t.Errorf("empty collector summary not zero: %+v", s)
	}
	if s.ExitCode() != 0 {
		t.Errorf("empty run exit code = %d, want 0", s.ExitCode())
	}
}
