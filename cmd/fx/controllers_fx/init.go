package controllers_fx

import (
	"go.uber.org/fx"

	"assinazap/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewSubscriberController),
	fx.Provide(controllers.NewWhatsAppController),
	fx.Provide(controllers.NewCompanyController))
