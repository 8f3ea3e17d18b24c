package services

import (
	"context"
	"log"
	"sync"
	"time"

	"journeysAPI/internal/types/notification"
)

type PushNotificationProvider interface {
	SendPush(ctx context.Context, tokens []notification.DeviceToken, title, body string, data map[string]any) error
}

// NotificationDispatcher pushes persisted notifications to devices through
// a small worker pool, off the request path.
type NotificationDispatcher struct {
	service      *NotificationService
	pushProvider PushNotificationProvider
	workers      int
	jobQueue     chan *notification.Notification
	stopChan     chan struct{}
	wg           sync.WaitGroup
}

func NewNotificationDispatcher(service *NotificationService) *NotificationDispatcher {
	dispatcher := &NotificationDispatcher{
		service:  service,
		workers:  5,
		jobQueue: make(chan *notification.Notification, 100),
		stopChan: make(chan struct{}),
	}

	dispatcher.startWorkers()
	return dispatcher
}

func (d *NotificationDispatcher) SetPushProvider(provider PushNotificationProvider) {
	d.pushProvider = provider
}

// Enqueue hands a notification to the worker pool. A full queue drops the
// push rather than blocking the caller; the row is already persisted and
// still shows in the in-app feed.
func (d *NotificationDispatcher) Enqueue(notif *notification.Notification) {
	select {
	case d.jobQueue <- notif:
	default:
		log.Printf("NotificationDispatcher: queue full, dropping push for notification %s", notif.ID)
	}
}

func (d *NotificationDispatcher) Stop() {
	close(d.stopChan)
	d.wg.Wait()
}

func (d *NotificationDispatcher) startWorkers() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
}

func (d *NotificationDispatcher) worker() {
	defer d.wg.Done()
	for {
		select {
		case notif := <-d.jobQueue:
			d.processJob(notif)
		case <-d.stopChan:
			return
		}
	}
}

func (d *NotificationDispatcher) processJob(notif *notification.Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if d.pushProvider == nil {
		// No provider configured (local dev). In-app feed still works.
		d.service.markSent(ctx, notif.ID)
		return
	}

	tokens, err := d.service.getDeviceTokens(ctx, notif.UserID)
	if err != nil {
		log.Printf("NotificationDispatcher: token lookup failed for user %s: %v", notif.UserID, err)
		d.service.markFailed(ctx, notif.ID, err)
		return
	}

	if len(tokens) > 0 {
		if err := d.pushProvider.SendPush(ctx, tokens, notif.Title, notif.Body, notif.Data); err != nil {
			log.Printf("NotificationDispatcher: push failed for user %s: %v", notif.UserID, err)
			d.service.markFailed(ctx, notif.ID, err)
			return
		}
	}

	d.service.markSent(ctx, notif.ID)
}
