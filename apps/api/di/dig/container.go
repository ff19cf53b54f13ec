package dig_container

import (
	"context"
	"log"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	"github.com/trezcool/recordsync/apps/api/echo"
	"github.com/trezcool/recordsync/apps/shared"
	"github.com/trezcool/recordsync/core"
	"github.com/trezcool/recordsync/core/attendance"
	"github.com/trezcool/recordsync/core/settings"
	"github.com/trezcool/recordsync/services/logger"
	"github.com/trezcool/recordsync/services/schedwatch"
)

type StorageLoggerParam struct {
	dig.In
	Logger core.Logger `name:"storageLogger"`
}

func newLogger(conf *core.Config) (core.Logger, error) {
	return logsvc.NewLogger("api", conf)
}

func newStorageLogger(conf *core.Config) (core.Logger, error) {
	return logsvc.NewLogger("storage", conf)
}

func newStorage(conf *core.Config, loggerParam StorageLoggerParam) (*shared.Storage, error) {
	st, err := shared.OpenStorage(context.Background(), conf, loggerParam.Logger)
	if err != nil {
		return nil, errors.Wrap(err, "setting up storage")
	}
	return st, nil
}

func newRecordRepository(st *shared.Storage) attendance.Repository {
	return st.Records
}

func newSettingsRepository(st *shared.Storage) settings.Repository {
	return st.Settings
}

func newValidator() (*validator.Validate, ut.Translator) {
	return core.NewValidator()
}

func newWatcher(conf *core.Config, svc attendance.Service, logger core.Logger) *schedwatch.Watcher {
	return schedwatch.New(conf.SettingsPath(), svc, logger)
}

func newServer(
	conf *core.Config,
	logger core.Logger,
	attSvc attendance.Service,
	settingsSvc settings.Service,
	validate *validator.Validate,
	translator ut.Translator,
) *echoapi.Server {
	return echoapi.NewServer(echoapi.ServerDeps{
		Conf:          conf,
		Logger:        logger,
		AttendanceSvc: attSvc,
		SettingsSvc:   settingsSvc,
		Validate:      validate,
		Translator:    translator,
	})
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	return NewWithConfig(core.NewConfig)
}

// NewWithConfig is New with a custom config constructor.
func NewWithConfig(newConfig func() (*core.Config, error)) *dig.Container {
	c := dig.New()

	must(c.Provide(newConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newStorageLogger, dig.Name("storageLogger")))
	must(c.Provide(newStorage))
	must(c.Provide(newRecordRepository))
	must(c.Provide(newSettingsRepository))
	must(c.Provide(newValidator))
	must(c.Provide(attendance.NewService))
	must(c.Provide(settings.NewService))
	must(c.Provide(newWatcher))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
