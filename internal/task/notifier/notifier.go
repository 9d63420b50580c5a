package notifier

import (
	"context"
	"fmt"
	"log"
	"time"

	authrepo "todovault-backend/internal/auth/repository"
	taskrepo "todovault-backend/internal/task/repository"
	"todovault-backend/pkg/fcm"
)

// ExpiryNotifier re-evaluates the expired projection once per minute and
// pushes a notification for every task that crossed its due date since the
// previous tick. Expiration is a read-time projection: the notifier keeps an
// in-memory watermark only and never writes task data.
type ExpiryNotifier struct {
	taskRepo  taskrepo.TaskRepository
	tokenRepo authrepo.DeviceTokenRepository
	fcmClient *fcm.Client
	interval  time.Duration
	stopChan  chan struct{}
	lastTick  time.Time
}

// NewExpiryNotifier creates a new notifier
func NewExpiryNotifier(
	taskRepo taskrepo.TaskRepository,
	tokenRepo authrepo.DeviceTokenRepository,
	fcmClient *fcm.Client,
) *ExpiryNotifier {
	return &ExpiryNotifier{
		taskRepo:  taskRepo,
		tokenRepo: tokenRepo,
		fcmClient: fcmClient,
		interval:  1 * time.Minute,
		stopChan:  make(chan struct{}),
	}
}

// Start begins the notifier loop
func (n *ExpiryNotifier) Start() {
	if n.fcmClient == nil {
		log.Println("[ExpiryNotifier] FCM client not available, notifier disabled")
		return
	}

	log.Println("[ExpiryNotifier] Starting due-date notifier (interval: 1 minute)")
	n.lastTick = time.Now()

	go func() {
		ticker := time.NewTicker(n.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				n.tick()
			case <-n.stopChan:
				log.Println("[ExpiryNotifier] Notifier stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the notifier
func (n *ExpiryNotifier) Stop() {
	close(n.stopChan)
}

// tick scans every user with a registered device for tasks whose due date
// fell inside the window since the last tick, and pushes one notification
// per crossing. Send failures are logged and dropped; the next crossing gets
// its own notification anyway.
func (n *ExpiryNotifier) tick() {
	now := time.Now()
	since := n.lastTick
	n.lastTick = now

	userIDs, err := n.tokenRepo.ListUserIDs()
	if err != nil {
		log.Printf("[ExpiryNotifier] Error listing users with devices: %v", err)
		return
	}

	for _, userID := range userIDs {
		n.notifyUser(context.Background(), userID, since, now)
	}
}

func (n *ExpiryNotifier) notifyUser(ctx context.Context, userID string, since, now time.Time) {
	tasks, err := n.taskRepo.GetAll(ctx, userID)
	if err != nil {
		log.Printf("[ExpiryNotifier] Error loading tasks for user %s: %v", userID, err)
		return
	}

	tokens, err := n.tokenRepo.GetTokensByUserID(userID)
	if err != nil {
		log.Printf("[ExpiryNotifier] Error getting device tokens for user %s: %v", userID, err)
		return
	}
	if len(tokens) == 0 {
		return
	}

	var tokenStrings []string
	for _, t := range tokens {
		tokenStrings = append(tokenStrings, t.Token)
	}

	for _, task := range tasks {
		if task.Completed {
			continue
		}
		// crossed the due date inside this tick's window
		if !task.DueDate.After(since) || task.DueDate.After(now) {
			continue
		}

		notification := fcm.NotificationData{
			Title: "Task expired: " + task.Title,
			Body:  fmt.Sprintf("Due %s. Expired tasks can still be edited or deleted.", task.DueDate.Format("02 Jan 2006 15:04")),
			Data: map[string]string{
				"type":     "task_expired",
				"task_id":  task.ID,
				"priority": string(task.Priority),
			},
			ClickAction: "/",
		}

		failedTokens, err := n.fcmClient.SendToDevices(ctx, tokenStrings, notification)
		if err != nil {
			log.Printf("[ExpiryNotifier] Error notifying expiry of task %s: %v", task.ID, err)
			continue
		}
		log.Printf("[ExpiryNotifier] Notified expiry of task '%s' to %d devices", task.Title, len(tokenStrings)-len(failedTokens))

		// Registrations rejected by FCM are gone for good
		for _, token := range failedTokens {
			n.tokenRepo.DeleteToken(token)
		}
	}
}
