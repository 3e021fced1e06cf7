package domain

import (
	"github.com/oneapp-labs/waitlist-api/config"
	"github.com/oneapp-labs/waitlist-api/domain/monitoring"
	"github.com/oneapp-labs/waitlist-api/domain/waitlist"
)

func SetupCoreDomain(appConfig *config.ApplicationConfig) {
	appConfig.RouterService.MountController(monitoring.NewMonitoringController(appConfig.DB, appConfig.Logger, appConfig.Cache))
	appConfig.RouterService.MountController(waitlist.NewWaitlistController(appConfig.DB, appConfig.Logger, appConfig.Cache))
}
