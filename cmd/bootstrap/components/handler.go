package components

import (
	"multipark-dashboard/internal/handler"
	"multipark-dashboard/internal/handler/api"
	"multipark-dashboard/internal/infra/spreadsheet"
	"multipark-dashboard/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		fx.Annotate(
			spreadsheet.NewXLSXParser,
			fx.As(new(api.SpreadsheetParser)),
		),
		func(cfg config.Config) config.UploadConfig {
			return cfg.Upload
		},
		api.NewUploadHandler,
	),
	fx.Invoke(handler.NewRouter),
)
