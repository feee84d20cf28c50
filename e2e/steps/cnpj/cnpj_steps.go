package cnpj

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/cucumber/godog"
)

// TestContext defines the methods needed from the main test context.
type TestContext interface {
	POST(path string, body any) error
	GET(path string) error
	GetResponseField(field string) (any, error)
}

// RegisterSteps registers CNPJ step definitions.
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &cnpjSteps{tc: tc}

	ctx.Step(`^I validate "([^"]*)"$`, steps.validate)
	ctx.Step(`^I look up "([^"]*)"$`, steps.lookUp)
	ctx.Step(`^I format "([^"]*)"$`, steps.format)
	ctx.Step(`^I validate the batch "([^"]*)"$`, steps.validateBatch)
	ctx.Step(`^I list the reserved numbers$`, steps.listReserved)

	ctx.Step(`^the cnpj should be valid$`, steps.shouldBeValid)
	ctx.Step(`^the cnpj should be invalid because of "([^"]*)"$`, steps.shouldBeInvalidBecause)
	ctx.Step(`^the batch should report (\d+) valid and (\d+) invalid$`, steps.batchTotals)
	ctx.Step(`^the response should list (\d+) reserved numbers$`, steps.reservedCount)
}

type cnpjSteps struct {
	tc TestContext
}

func (s *cnpjSteps) validate(_ context.Context, value string) error {
	return s.tc.POST("/cnpj/validate", map[string]string{"cnpj": value})
}

func (s *cnpjSteps) lookUp(_ context.Context, value string) error {
	return s.tc.GET("/cnpj/" + url.PathEscape(value))
}

func (s *cnpjSteps) format(_ context.Context, value string) error {
	return s.tc.POST("/cnpj/format", map[string]string{"cnpj": value})
}

func (s *cnpjSteps) validateBatch(_ context.Context, values string) error {
	return s.tc.POST("/cnpj/validate/batch", map[string][]string{"cnpjs": strings.Split(values, ",")})
}

func (s *cnpjSteps) listReserved(_ context.Context) error {
	return s.tc.GET("/cnpj/reserved")
}

func (s *cnpjSteps) shouldBeValid(_ context.Context) error {
	valid, err := s.tc.GetResponseField("valid")
	if err != nil {
		return err
	}
	if valid != true {
		reason, _ := s.tc.GetResponseField("reason")
		return fmt.Errorf("expected valid cnpj, got reason %v", reason)
	}
	return nil
}

func (s *cnpjSteps) shouldBeInvalidBecause(_ context.Context, want string) error {
	valid, err := s.tc.GetResponseField("valid")
	if err != nil {
		return err
	}
	if valid != false {
		return fmt.Errorf("expected invalid cnpj")
	}
	reason, err := s.tc.GetResponseField("reason")
	if err != nil {
		return err
	}
	if reason != want {
		return fmt.Errorf("expected reason %q, got %v", want, reason)
	}
	return nil
}

func (s *cnpjSteps) batchTotals(_ context.Context, valid, invalid int) error {
	gotValid, err := s.tc.GetResponseField("valid")
	if err != nil {
		return err
	}
	gotInvalid, err := s.tc.GetResponseField("invalid")
	if err != nil {
		return err
	}
	// JSON numbers decode as float64.
	if gotValid != float64(valid) || gotInvalid != float64(invalid) {
		return fmt.Errorf("expected %d valid and %d invalid, got %v and %v", valid, invalid, gotValid, gotInvalid)
	}
	return nil
}

func (s *cnpjSteps) reservedCount(_ context.Context, n int) error {
	reserved, err := s.tc.GetResponseField("reserved")
	if err != nil {
		return err
	}
	list, ok := reserved.([]any)
	if !ok || len(list) != n {
		return fmt.Errorf("expected %d reserved numbers, got %v", n, reserved)
	}
	return nil
}
