package recruitment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"recruitment-workers/internal/models"
	"recruitment-workers/internal/repository"
)

// Notifier appends candidate messages to the notification sink inside the caller's transaction.
type Notifier struct {
	newID func() string
	now   func() time.Time
}

func (n *Notifier) send(ctx context.Context, repo repository.Repository, userID, content string) error {
	return repo.InsertNotification(ctx, &models.Notification{
		ID:        n.newID(),
		UserID:    userID,
		Content:   content,
		IsRead:    false,
		CreatedAt: n.now(),
	})
}

func appliedMessage(job *models.Job) string {
	return fmt.Sprintf("Your application for %q has been submitted.", job.Title)
}

func needTestMessage(job *models.Job) string {
	return fmt.Sprintf("Your application for %q requires a skill test. Please complete it to continue.", job.Title)
}

func testReceivedMessage(job *models.Job) string {
	return fmt.Sprintf("Your skill test for %q has been received. Your application is now pending review.", job.Title)
}

// interviewMessage falls back to the time as the company typed it when it could not be parsed.
func interviewMessage(job *models.Job, iv *models.Interview, rawTime string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Congratulations! Your application for %q has moved to the interview stage.", job.Title)
	switch raw := strings.TrimSpace(rawTime); {
	case iv.InterviewDate != nil:
		fmt.Fprintf(&b, " Time: %s.", iv.InterviewDate.Format("2006-01-02 15:04"))
	case raw != "":
		fmt.Fprintf(&b, " Time: %s.", strings.Replace(raw, "T", " ", 1))
	}
	if iv.Location != "" {
		fmt.Fprintf(&b, " Location: %s.", iv.Location)
	}
	if iv.Note != "" {
		fmt.Fprintf(&b, " Note: %s", iv.Note)
	}
	return b.String()
}

func offerMessage(job *models.Job, detail string) string {
	msg := fmt.Sprintf("Congratulations! You have received an offer for %q.", job.Title)
	if detail != "" {
		msg += " Details: " + detail
	}
	return msg
}

func rejectedMessage(job *models.Job) string {
	return fmt.Sprintf("Thank you for your interest in %q. Unfortunately, your application was not successful.", job.Title)
}
