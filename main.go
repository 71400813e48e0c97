package main

import (
	"fmt"
	"os"
	"time"

	"github.com/kycflow/gateway/config"
	"github.com/kycflow/gateway/controllers"
	"github.com/kycflow/gateway/routers"
	"github.com/kycflow/gateway/services/kycaid"
	"github.com/kycflow/gateway/services/poller"
	"github.com/kycflow/gateway/services/wizard"
	"github.com/kycflow/gateway/tasks"
	"github.com/kycflow/gateway/utils/logger"
)

func main() {
	// Set timezone
	conf := config.ServerConfig()
	loc, _ := time.LoadLocation(conf.Timezone)
	time.Local = loc

	if err := config.ValidateDocumentTypes(); err != nil {
		logger.Fatalf("document types validation: %s", err)
	}

	if err := os.MkdirAll(conf.UploadDir, 0o755); err != nil {
		logger.Fatalf("upload directory: %s", err)
	}

	kycaidConf := config.KycaidConfig()
	client := kycaid.NewClient(kycaid.NewModeStore(kycaidConf))
	watcher := poller.NewWatcher(client, kycaidConf.PollInterval, kycaidConf.PollMaxAttempts)
	store := wizard.NewStore()

	ctrl, err := controllers.NewController(client, watcher)
	if err != nil {
		logger.Fatalf("controller setup: %s", err)
	}

	// Start cron jobs
	tasks.StartCronJobs(store, watcher)

	// Run the server
	router := routers.Routes(ctrl, store)

	appServer := fmt.Sprintf("%s:%s", conf.Host, conf.Port)
	logger.Infof("Server Running at :%v", appServer)

	logger.Fatalf("%v", router.Run(appServer))
}
