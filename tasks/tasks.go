package tasks

import (
	"time"

	"github.com/go-co-op/gocron"

	"github.com/kycflow/gateway/config"
	"github.com/kycflow/gateway/services/poller"
	"github.com/kycflow/gateway/services/wizard"
	"github.com/kycflow/gateway/utils/logger"
)

// Finished watches stay readable for a while so clients can collect the
// final snapshot before the entry is dropped.
const watchRetention = 30 * time.Minute

// StartCronJobs starts cron jobs
func StartCronJobs(store *wizard.Store, watcher *poller.Watcher) {
	// Use the system's local timezone instead of hardcoded UTC to prevent timezone conflicts
	scheduler := gocron.NewScheduler(time.Local)
	wizardConf := config.WizardConfig()

	// Drop expired wizard sessions
	_, err := scheduler.Every(int(wizardConf.SweepInterval.Minutes())).Minutes().Do(store.Sweep)
	if err != nil {
		logger.Errorf("StartCronJobs for wizard session sweep: %v", err)
	}

	// Drop finished verification watches past retention
	_, err = scheduler.Every(int(wizardConf.SweepInterval.Minutes())).Minutes().Do(func() {
		watcher.Sweep(watchRetention)
	})
	if err != nil {
		logger.Errorf("StartCronJobs for verification watch sweep: %v", err)
	}

	// Start scheduler
	scheduler.StartAsync()
}
