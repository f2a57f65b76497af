package controllers_fx

import (
	"go.uber.org/fx"

	"tripflow/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewChatController),
	fx.Provide(controllers.NewPlannerController),
	fx.Provide(controllers.NewSessionController))
