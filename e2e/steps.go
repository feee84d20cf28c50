package e2e

import (
	"github.com/cucumber/godog"

	"cadastro/e2e/steps/cnpj"
)

// RegisterSteps registers all step definitions from modular packages.
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	tc.registerCommonSteps(ctx)
	cnpj.RegisterSteps(ctx, tc)
}
