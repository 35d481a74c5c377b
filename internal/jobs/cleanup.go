package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/swiftship/courier-backend/internal/storage"
)

// OTPCleanupJob periodically sweeps expired OTP records out of the store.
// Expiry is also enforced at verification time; the sweep keeps records that
// were never re-checked from accumulating.
type OTPCleanupJob struct {
	store    storage.Store
	log      *zap.Logger
	interval time.Duration
	stop     chan struct{}
}

// NewOTPCleanupJob creates the sweeper with the given interval.
func NewOTPCleanupJob(store storage.Store, interval time.Duration, log *zap.Logger) *OTPCleanupJob {
	return &OTPCleanupJob{
		store:    store,
		log:      log,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Start launches the sweep loop in the background.
func (j *OTPCleanupJob) Start() {
	go j.run()
	j.log.Info("OTP cleanup job started", zap.Duration("interval", j.interval))
}

// Stop halts the sweep loop.
func (j *OTPCleanupJob) Stop() {
	close(j.stop)
}

func (j *OTPCleanupJob) run() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.sweep()
		case <-j.stop:
			return
		}
	}
}

func (j *OTPCleanupJob) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	removed, err := j.store.DeleteExpiredOTPs(ctx, time.Now())
	if err != nil {
		j.log.Warn("OTP cleanup sweep failed", zap.Error(err))
		return
	}
	if removed > 0 {
		j.log.Info("swept expired OTP records", zap.Int64("removed", removed))
	}
}
