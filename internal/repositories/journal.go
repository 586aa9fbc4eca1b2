package repositories

import (
	"github.com/desertthunder/watchlist/internal/models"
)

// JournalAdapter records tracker operation outcomes through an [ActivityRepository].
type JournalAdapter struct {
	repo *ActivityRepository
}

// NewJournalAdapter creates a new JournalAdapter with the given repository
func NewJournalAdapter(repo *ActivityRepository) *JournalAdapter {
	return &JournalAdapter{repo: repo}
}

// Record appends one entry. A nil error maps to [models.OutcomeOK] and the message is kept as-is;
// a non-nil error maps to [models.OutcomeFailed] and its text replaces an empty message.
func (j *JournalAdapter) Record(op models.Operation, movie models.Movie, message string, opErr error) error {
	outcome := models.OutcomeOK
	if opErr != nil {
		outcome = models.OutcomeFailed
		if message == "" {
			message = opErr.Error()
		}
	}

	return j.repo.Create(models.NewActivity(op, outcome, movie.ID, movie.Name, message))
}
