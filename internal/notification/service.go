package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/logger"
	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/metrics"
)

const (
	queueKey       = "sms_jobs"
	failedQueueKey = "sms_jobs:failed"
	maxTries       = 3

	TypeWelcome        = "welcome"
	TypeExpiryReminder = "expiry_reminder"
	TypeTest           = "test"

	ChannelSMS      = "sms"
	ChannelWhatsApp = "whatsapp"
)

type SMSJob struct {
	To      string    `json:"to"`
	Body    string    `json:"body"`
	Type    string    `json:"type"`
	Channel string    `json:"channel"`
	Tries   int       `json:"tries"`
	Created time.Time `json:"created"`
}

// Service queues outbound SMS/WhatsApp messages on a Redis list and
// delivers them from a background worker through Twilio. Enqueueing
// never blocks on the carrier; failures are retried and then parked on
// a failed queue for inspection.
type Service struct {
	redis  *redis.Client
	sender Sender
}

func New(redisAddr string, sender Sender) *Service {
	return &Service{
		redis: redis.NewClient(&redis.Options{
			Addr: redisAddr,
		}),
		sender: sender,
	}
}

func (s *Service) Send(ctx context.Context, to, body, msgType, channel string) error {
	job := SMSJob{
		To:      to,
		Body:    body,
		Type:    msgType,
		Channel: channel,
		Tries:   0,
		Created: time.Now(),
	}

	data, err := json.Marshal(job)
	if err != nil {
		logger.Errorf("Failed to marshal SMS job: %v", err)
		return err
	}

	if err := s.redis.LPush(ctx, queueKey, string(data)).Err(); err != nil {
		logger.Errorf("Failed to queue %s SMS to %s: %v", msgType, to, err)
		return err
	}

	metrics.RecordNotification(msgType, "queued")
	logger.Infof("SMS queued: %s to %s", msgType, to)
	return nil
}

func (s *Service) Start(ctx context.Context) {
	logger.Info("SMS service started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("SMS service stopped")
			return
		default:
			s.processNext(ctx)
		}
	}
}

func (s *Service) processNext(ctx context.Context) {
	result, err := s.redis.BRPop(ctx, 2*time.Second, queueKey).Result()
	if err != nil {
		return
	}

	var job SMSJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Errorf("Bad SMS data: %v", err)
		return
	}

	job.Tries++
	logger.Infof("Sending %s SMS to %s (attempt %d)", job.Type, job.To, job.Tries)
	if err := s.sender.Deliver(ctx, job.To, job.Body, job.Channel); err != nil {
		logger.Errorf("Failed to send SMS to %s: %v", job.To, err)

		if job.Tries < maxTries {
			time.Sleep(5 * time.Second)
			data, _ := json.Marshal(job)
			s.redis.LPush(context.Background(), queueKey, data)
			logger.Infof("Retrying SMS to %s (attempt %d)", job.To, job.Tries+1)
		} else {
			logger.Errorf("SMS to %s failed after %d attempts", job.To, maxTries)
			metrics.RecordNotification(job.Type, "failed")
			s.saveFailed(job, err)
		}
		return
	}

	metrics.RecordNotification(job.Type, "sent")
	logger.Infof("SMS sent successfully to %s", job.To)
}

func (s *Service) saveFailed(job SMSJob, err error) {
	failed := map[string]interface{}{
		"job":   job,
		"error": err.Error(),
		"time":  time.Now(),
	}
	data, _ := json.Marshal(failed)
	s.redis.LPush(context.Background(), failedQueueKey, data)
	logger.Errorf("SMS moved to failed queue: %s", job.To)
}

func (s *Service) QueueLength(ctx context.Context) int64 {
	length, _ := s.redis.LLen(ctx, queueKey).Result()
	metrics.SetNotificationQueueLength(float64(length))
	return length
}

func (s *Service) Close() error {
	return s.redis.Close()
}

func (s *Service) SendWelcome(ctx context.Context, gymID int, phone, name, planName string) error {
	body := fmt.Sprintf(`Hi %s, welcome aboard!

Your %s membership is now active. Show your member code at the desk or scan the gym QR to check in.

See you at the gym!`, name, planName)

	return s.Send(ctx, phone, body, TypeWelcome, ChannelSMS)
}

func (s *Service) SendExpiryReminder(ctx context.Context, phone, name, planName string, expiryDate time.Time, daysLeft int) error {
	body := fmt.Sprintf(`Hi %s, your %s membership expires on %s (%d days left).

Renew at the front desk to keep your access uninterrupted.`, name, planName, expiryDate.Format("Jan 2, 2006"), daysLeft)

	return s.Send(ctx, phone, body, TypeExpiryReminder, ChannelSMS)
}

func (s *Service) SendTest(ctx context.Context, phone string) error {
	return s.Send(ctx, phone, "Test message from your gym management system.", TypeTest, ChannelSMS)
}
