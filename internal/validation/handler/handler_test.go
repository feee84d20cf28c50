package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"cadastro/internal/validation/handler/mocks"
	"cadastro/internal/validation/models"
	dErrors "cadastro/pkg/domain-errors"
	"cadastro/pkg/testutil"
)

//go:generate mockgen -source=handler.go -destination=mocks/service-mocks.go -package=mocks Service
type HandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  chi.Router
	now     time.Time
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s.router = chi.NewRouter()
	New(s.service, logger).Register(s.router)
	s.now = time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC)
}

func (s *HandlerSuite) validResult(input string) models.Result {
	return models.Result{
		Input:     input,
		Digits:    "46843485000186",
		Masked:    "46.843.485/0001-86",
		Valid:     true,
		CheckedAt: s.now,
	}
}

func (s *HandlerSuite) decode(body io.Reader, v any) {
	s.Require().NoError(json.NewDecoder(body).Decode(v))
}

func (s *HandlerSuite) TestHandleValidate() {
	s.Run("returns the verdict", func() {
		s.service.EXPECT().Validate(gomock.Any(), "46843485000186").Return(s.validResult("46843485000186"))

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/cnpj/validate", ValidateRequest{CNPJ: "46843485000186"})
		w := testutil.DoRequest(s.router, req)

		s.Equal(http.StatusOK, w.Code)
		var got models.Result
		s.decode(w.Body, &got)
		s.True(got.Valid)
		s.Equal("46.843.485/0001-86", got.Masked)
	})

	s.Run("invalid cnpj is still a 200", func() {
		s.service.EXPECT().Validate(gomock.Any(), "11257245286531").Return(models.Result{
			Input: "11257245286531", Digits: "11257245286531", Masked: "11.257.245/2865-31",
			Reason: models.ReasonCheckDigit, CheckedAt: s.now,
		})

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/cnpj/validate", ValidateRequest{CNPJ: "11257245286531"})
		w := testutil.DoRequest(s.router, req)

		s.Equal(http.StatusOK, w.Code)
		var got map[string]any
		s.decode(w.Body, &got)
		s.Equal(false, got["valid"])
		s.Equal("check_digit", got["reason"])
	})

	s.Run("whitespace is passed through untouched", func() {
		s.service.EXPECT().Validate(gomock.Any(), " 46843485000186").Return(models.Result{Reason: models.ReasonLength})

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/cnpj/validate", ValidateRequest{CNPJ: " 46843485000186"})
		w := testutil.DoRequest(s.router, req)
		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("empty cnpj is an invalid verdict, not an error", func() {
		s.service.EXPECT().Validate(gomock.Any(), "").Return(models.Result{Reason: models.ReasonLength, CheckedAt: s.now})

		req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/cnpj/validate", `{"cnpj":""}`)
		w := testutil.DoRequest(s.router, req)

		s.Equal(http.StatusOK, w.Code)
		var got map[string]any
		s.decode(w.Body, &got)
		s.Equal(false, got["valid"])
		s.Equal("length", got["reason"])
	})

	s.Run("oversized cnpj", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/cnpj/validate", ValidateRequest{CNPJ: strings.Repeat("1", maxInputLength+1)})
		w := testutil.DoRequest(s.router, req)

		s.Equal(http.StatusBadRequest, w.Code)
		var got map[string]string
		s.decode(w.Body, &got)
		s.Equal("validation_error", got["error"])
	})

	s.Run("malformed json", func() {
		req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/cnpj/validate", `{"cnpj":`)
		w := testutil.DoRequest(s.router, req)

		s.Equal(http.StatusBadRequest, w.Code)
		var got map[string]string
		s.decode(w.Body, &got)
		s.Equal("bad_request", got["error"])
	})
}

func (s *HandlerSuite) TestHandleLookup() {
	s.Run("bare path value", func() {
		s.service.EXPECT().Validate(gomock.Any(), "46843485000186").Return(s.validResult("46843485000186"))

		w := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/cnpj/46843485000186"))
		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("escaped percent sign is decoded once", func() {
		s.service.EXPECT().Validate(gomock.Any(), "468434850001%86").Return(models.Result{Reason: models.ReasonLength})

		w := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/cnpj/468434850001%2586"))
		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("escaped masked path value is unescaped", func() {
		s.service.EXPECT().Validate(gomock.Any(), "46.843.485/0001-86").Return(models.Result{Reason: models.ReasonLength})

		w := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/cnpj/46.843.485%2F0001-86"))
		s.Equal(http.StatusOK, w.Code)
	})
}

func (s *HandlerSuite) TestHandleValidateBatch() {
	s.Run("returns results with totals", func() {
		inputs := []string{"46843485000186", "00000000000000"}
		s.service.EXPECT().ValidateBatch(gomock.Any(), inputs).Return([]models.Result{
			s.validResult("46843485000186"),
			{Input: "00000000000000", Reason: models.ReasonReserved, CheckedAt: s.now},
		}, nil)

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/cnpj/validate/batch", BatchRequest{CNPJs: inputs})
		w := testutil.DoRequest(s.router, req)

		s.Equal(http.StatusOK, w.Code)
		var got BatchResponse
		s.decode(w.Body, &got)
		s.Len(got.Results, 2)
		s.Equal(1, got.Valid)
		s.Equal(1, got.Invalid)
		s.Equal(models.ReasonReserved, got.Results[1].Reason)
	})

	s.Run("empty batch is rejected before the service", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/cnpj/validate/batch", BatchRequest{})
		w := testutil.DoRequest(s.router, req)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("service errors are translated", func() {
		s.service.EXPECT().ValidateBatch(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeValidation, "batch exceeds the maximum size"))

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/cnpj/validate/batch", BatchRequest{CNPJs: []string{"1", "2"}})
		w := testutil.DoRequest(s.router, req)

		s.Equal(http.StatusBadRequest, w.Code)
		var got map[string]string
		s.decode(w.Body, &got)
		s.Equal("batch exceeds the maximum size", got["error_description"])
	})

	s.Run("batch abandoned by the client", func() {
		s.service.EXPECT().ValidateBatch(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.Wrap(context.Canceled, dErrors.CodeCanceled, "batch validation was cancelled"))

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/cnpj/validate/batch", BatchRequest{CNPJs: []string{"1"}})
		w := testutil.DoRequest(s.router, req)
		s.Equal(dErrors.StatusClientClosedRequest, w.Code)
	})

	s.Run("batch past its deadline", func() {
		s.service.EXPECT().ValidateBatch(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.Wrap(context.DeadlineExceeded, dErrors.CodeTimeout, "batch validation did not complete"))

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/cnpj/validate/batch", BatchRequest{CNPJs: []string{"1"}})
		w := testutil.DoRequest(s.router, req)
		s.Equal(http.StatusGatewayTimeout, w.Code)
	})

	s.Run("length bound counts characters not bytes", func() {
		wide := strings.Repeat("é", maxInputLength)
		s.service.EXPECT().ValidateBatch(gomock.Any(), []string{wide}).
			Return([]models.Result{{Input: wide, Reason: models.ReasonLength, CheckedAt: s.now}}, nil)

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/cnpj/validate/batch", BatchRequest{CNPJs: []string{wide}})
		w := testutil.DoRequest(s.router, req)
		s.Equal(http.StatusOK, w.Code)

		req = testutil.NewJSONRequest(s.T(), http.MethodPost, "/cnpj/validate/batch", BatchRequest{CNPJs: []string{wide + "é"}})
		w = testutil.DoRequest(s.router, req)
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *HandlerSuite) TestHandleFormat_Empty() {
	s.service.EXPECT().Format(gomock.Any(), "").Return(models.FormatResult{})

	req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/cnpj/format", `{"cnpj":""}`)
	w := testutil.DoRequest(s.router, req)

	s.Equal(http.StatusOK, w.Code)
	var got map[string]string
	s.decode(w.Body, &got)
	s.Equal("", got["masked"])
}

func (s *HandlerSuite) TestHandleFormat() {
	s.service.EXPECT().Format(gomock.Any(), "46.?ABC843.485/0001-86abc").
		Return(models.FormatResult{Input: "46.?ABC843.485/0001-86abc", Masked: "46.843.485/0001-86"})

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/cnpj/format", ValidateRequest{CNPJ: "46.?ABC843.485/0001-86abc"})
	w := testutil.DoRequest(s.router, req)

	s.Equal(http.StatusOK, w.Code)
	var got models.FormatResult
	s.decode(w.Body, &got)
	s.Equal("46.843.485/0001-86", got.Masked)
}

func (s *HandlerSuite) TestHandleReserved() {
	s.service.EXPECT().Reserved().Return([]string{"00000000000000", "11111111111111"})

	w := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/cnpj/reserved"))

	s.Equal(http.StatusOK, w.Code)
	var got ReservedResponse
	s.decode(w.Body, &got)
	s.Equal([]string{"00000000000000", "11111111111111"}, got.Reserved)
}

func (s *HandlerSuite) TestMethodNotAllowed() {
	w := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodDelete, "/cnpj/reserved"))
	s.Equal(http.StatusMethodNotAllowed, w.Code)
}
